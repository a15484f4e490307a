// Package matchmaker implements the MatchRegistry: match creation, join-code
// lookup, and disposal of matches left empty past the grace period.
package matchmaker

import (
	"crypto/rand"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fenixsports/soccer-server/internal/config"
	"github.com/fenixsports/soccer-server/internal/match"
)

// ErrRegistryFull is returned when MaxMatchesPerServer matches are already
// live and a new one is requested.
var ErrRegistryFull = errors.New("matchmaker: server full")

// ErrCodeExhausted is returned when no unique join code could be minted
// after JoinCodeMaxAttempts tries.
var ErrCodeExhausted = errors.New("matchmaker: could not allocate join code")

// MaxMatchesPerServer bounds how many concurrent matches one process hosts.
const MaxMatchesPerServer = 64

// Registry owns every live Match, keyed both by ID and by join code, and
// the sink factory used to wire each new match to its transport.
type Registry struct {
	mu      sync.RWMutex
	matches map[string]*match.Match
	runners map[string]*match.Runner
	byCode  map[string]string // code -> match ID

	sinkFactory func(matchID string) match.EventSink
	logger      zerolog.Logger
}

// NewRegistry constructs an empty registry. sinkFactory builds the
// transport-facing EventSink for a newly created match (nil is allowed;
// matches then discard their events, useful for tests).
func NewRegistry(sinkFactory func(matchID string) match.EventSink, logger zerolog.Logger) *Registry {
	return &Registry{
		matches:     make(map[string]*match.Match),
		runners:     make(map[string]*match.Runner),
		byCode:      make(map[string]string),
		sinkFactory: sinkFactory,
		logger:      logger,
	}
}

// Enqueue hands an intent to the named match's own SimLoop goroutine.
// Returns false if the match is unknown or its queue is saturated.
func (r *Registry) Enqueue(matchID string, fn match.Intent) bool {
	r.mu.RLock()
	runner, ok := r.runners[matchID]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	return runner.Enqueue(fn)
}

// CreatePublicMatch finds an existing non-full public match awaiting
// players, or creates a new one if none qualifies.
func (r *Registry) CreatePublicMatch(selectedMap string) (*match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.matches {
		if m.Code == "" && m.PhaseSnapshot() == match.PhaseWaiting && m.PlayerCount() < config.MaxClients {
			return m, nil
		}
	}
	return r.createLocked("", selectedMap)
}

// CreatePrivateMatch allocates a new match with a freshly minted join code.
func (r *Registry) CreatePrivateMatch(selectedMap string) (*match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, err := r.allocateCodeLocked()
	if err != nil {
		return nil, err
	}
	return r.createLocked(code, selectedMap)
}

func (r *Registry) createLocked(code, selectedMap string) (*match.Match, error) {
	if len(r.matches) >= MaxMatchesPerServer {
		return nil, ErrRegistryFull
	}

	id := uuid.NewString()
	var sink match.EventSink
	if r.sinkFactory != nil {
		sink = r.sinkFactory(id)
	}

	m := match.NewMatch(id, code, selectedMap, sink, r.logger)
	r.matches[id] = m
	if code != "" {
		r.byCode[code] = id
	}

	runner := match.NewRunner(m)
	r.runners[id] = runner
	go runner.Run()

	r.logger.Info().Str("match_id", id).Str("code", code).Msg("match created")
	return m, nil
}

// GetByID looks up a live match by ID.
func (r *Registry) GetByID(id string) (*match.Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[id]
	return m, ok
}

// GetByCode looks up a live match by its join code.
func (r *Registry) GetByCode(code string) (*match.Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byCode[code]
	if !ok {
		return nil, false
	}
	m, ok := r.matches[id]
	return m, ok
}

// Remove disposes of a match entirely (used once a match is confirmed both
// empty past the grace delay and uninteresting to keep around).
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	m, ok := r.matches[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	if m.Code != "" {
		delete(r.byCode, m.Code)
	}
	delete(r.matches, id)
	runner := r.runners[id]
	delete(r.runners, id)
	r.mu.Unlock()

	if runner != nil {
		runner.Stop()
	}
	r.logger.Info().Str("match_id", id).Msg("match disposed")
}

// SweepEmpty disposes every match that has been empty for longer than
// EmptyDisposeDelay, or that suffered a fatal panic mid-step. Intended to be
// called periodically (e.g. once a second) from the server's main loop.
func (r *Registry) SweepEmpty(now time.Time) int {
	r.mu.Lock()
	var stale []string
	for id, m := range r.matches {
		if m.Corrupt() {
			stale = append(stale, id)
			continue
		}
		if m.IsEmpty() && !m.EmptySince().IsZero() && now.Sub(m.EmptySince()) >= config.EmptyDisposeDelay {
			stale = append(stale, id)
		}
	}

	runners := make([]*match.Runner, 0, len(stale))
	for _, id := range stale {
		m := r.matches[id]
		if m.Code != "" {
			delete(r.byCode, m.Code)
		}
		delete(r.matches, id)
		if runner, ok := r.runners[id]; ok {
			runners = append(runners, runner)
			delete(r.runners, id)
		}
	}
	r.mu.Unlock()

	for _, runner := range runners {
		runner.Stop()
	}
	return len(stale)
}

// Snapshot returns the set of all live matches. Each match is stepped by its
// own Runner, not through this list.
func (r *Registry) Snapshot() []*match.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*match.Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m)
	}
	return out
}

// Stats summarizes the registry's current load.
type Stats struct {
	TotalMatches int
	TotalPlayers int
}

// GetStats computes registry-wide stats.
func (r *Registry) GetStats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Stats{TotalMatches: len(r.matches)}
	for _, m := range r.matches {
		s.TotalPlayers += m.PlayerCount()
	}
	return s
}

// allocateCodeLocked mints a unique join code from JoinCodeAlphabet, retrying
// up to JoinCodeMaxAttempts times on collision. Caller must hold r.mu.
func (r *Registry) allocateCodeLocked() (string, error) {
	for attempt := 0; attempt < config.JoinCodeMaxAttempts; attempt++ {
		code, err := randomCode(config.JoinCodeLen)
		if err != nil {
			return "", err
		}
		if _, exists := r.byCode[code]; !exists {
			return code, nil
		}
	}
	return "", ErrCodeExhausted
}

func randomCode(length int) (string, error) {
	alphabet := config.JoinCodeAlphabet
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, length)
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(out), nil
}
