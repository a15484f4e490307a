package match

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"github.com/fenixsports/soccer-server/internal/config"
	"github.com/fenixsports/soccer-server/internal/physics"
)

var (
	// ErrMatchFull is returned when a join is attempted against a match
	// already holding MaxClients players.
	ErrMatchFull = errors.New("match: full")
	// ErrNotHost is returned when a host-only action (start-game, end-game)
	// is attempted by a non-host session.
	ErrNotHost = errors.New("match: not host")
	// ErrUnknownPlayer is returned when an action names a session not
	// currently joined to the match.
	ErrUnknownPlayer = errors.New("match: unknown player")
)

// Match owns one authoritative game instance: its PhysicsWorld, every
// connected player, the ball, active power-ups, and the component set the
// sim loop drives each tick. All mutation happens on the sim goroutine; the
// NetAdapter only ever enqueues intents onto it.
type Match struct {
	ID          string
	Code        string
	Phase       Phase
	CurrentTick uint64

	TimerRemaining time.Duration
	SelectedMap    string

	Players     map[string]*Player
	joinOrder   []string
	Ball        *Ball
	PowerUps    map[string]*PowerUp

	World    *physics.World
	Input    *InputRouter
	Contact  *ContactResolver
	Boundary *BoundaryEnforcer
	Goals    *GoalAdjudicator
	PowerUpSvc *PowerUpService

	sink   EventSink
	logger zerolog.Logger

	resetPending bool
	resetAt      time.Time

	createdAt time.Time

	// The registry's own goroutines (HTTP handlers, the periodic sweep) read
	// player count, phase, empty/corrupt status directly, concurrently with
	// the match's own Runner goroutine writing them inside Join/Leave/
	// StartGame/endMatch/recoverFromPanic. Every field the registry reads
	// cross-goroutine is therefore mirrored into an atomic below; the plain
	// Phase field above stays the source of truth for same-goroutine sim
	// code (Step, snapshot, tests that never start a Runner).
	playerCount        atomic.Int32
	phaseAtomic        atomic.Int32
	isEmptyAtomic      atomic.Bool
	emptySinceUnixNano atomic.Int64
	corruptAtomic      atomic.Bool
}

// NewMatch constructs a match in PhaseWaiting with arena geometry built and
// the ball spawned at center, ready to accept joins.
func NewMatch(id, code, selectedMap string, sink EventSink, logger zerolog.Logger) *Match {
	if sink == nil {
		sink = noopSink{}
	}

	world := physics.NewWorld(mgl32.Vec3{0, -config.Gravity, 0})
	BuildArena(world)

	ball := NewBall()
	ball.Body = world.AddDynamicSphere(vec3(ball.X, ball.Y, ball.Z), config.BallRadius, config.BallMass, config.PlayerBallRestitution, 0.05, 0.1, true)

	now := time.Now()

	return &Match{
		ID:             id,
		Code:           code,
		Phase:          PhaseWaiting,
		SelectedMap:    selectedMap,
		TimerRemaining: config.MatchTimerStart * time.Second,
		Players:        make(map[string]*Player),
		PowerUps:       make(map[string]*PowerUp),
		Ball:           ball,
		World:          world,
		Input:          NewInputRouter(),
		Contact:        NewContactResolver(),
		Boundary:       NewBoundaryEnforcer(),
		Goals:          NewGoalAdjudicator(),
		PowerUpSvc:     NewPowerUpService(now),
		sink:           sink,
		logger:         logger.With().Str("match_id", id).Logger(),
		createdAt:      now,
	}
}

// pickTeam honours a requested "red"/"blue" while that team has fewer than
// MaxClients/2 players; otherwise (no or unknown request, or the requested
// team is full) it auto-balances to whichever team currently has fewer
// players, Red on a tie.
func (m *Match) pickTeam(requested string) Team {
	var red, blue int
	for _, p := range m.Players {
		if p.Team == TeamRed {
			red++
		} else {
			blue++
		}
	}

	perTeam := config.MaxClients / 2
	switch requested {
	case "red":
		if red < perTeam {
			return TeamRed
		}
	case "blue":
		if blue < perTeam {
			return TeamBlue
		}
	}

	if blue < red {
		return TeamBlue
	}
	return TeamRed
}

// Join adds a new player to the match, auto-balancing team if requestedTeam
// is empty/invalid or already full. Returns ErrMatchFull once MaxClients is
// reached.
func (m *Match) Join(sessionID, requestedTeam, character string) (*Player, error) {
	if _, ok := m.Players[sessionID]; ok {
		return m.Players[sessionID], nil
	}
	if len(m.Players) >= config.MaxClients {
		return nil, ErrMatchFull
	}

	team := m.pickTeam(requestedTeam)
	p := NewPlayer(sessionID, team, character)
	p.ResetToSpawn()
	p.Body = m.World.AddKinematicSphere(vec3(p.X, p.Y, p.Z), config.PlayerRadius)

	m.Players[sessionID] = p
	m.joinOrder = append(m.joinOrder, sessionID)
	m.playerCount.Add(1)
	m.isEmptyAtomic.Store(false)
	m.emptySinceUnixNano.Store(0)

	m.logger.Info().Str("session_id", sessionID).Str("team", team.String()).Msg("player joined")
	return p, nil
}

// Leave removes a player from the match. If the match becomes empty, Leave
// records that and the time it happened (IsEmpty/EmptySince), which the
// registry's sweep uses for the dispose delay.
func (m *Match) Leave(sessionID string) {
	p, ok := m.Players[sessionID]
	if !ok {
		return
	}
	m.World.RemoveBody(p.Body)
	delete(m.Players, sessionID)
	m.playerCount.Add(-1)

	for i, id := range m.joinOrder {
		if id == sessionID {
			m.joinOrder = append(m.joinOrder[:i], m.joinOrder[i+1:]...)
			break
		}
	}

	if len(m.Players) == 0 {
		now := time.Now()
		m.isEmptyAtomic.Store(true)
		m.emptySinceUnixNano.Store(now.UnixNano())
	}

	m.logger.Info().Str("session_id", sessionID).Msg("player left")
}

// IsHost reports whether sessionID is the first player to have joined and
// still present; only the host may start/end the game.
func (m *Match) IsHost(sessionID string) bool {
	return len(m.joinOrder) > 0 && m.joinOrder[0] == sessionID
}

// IsEmpty reports whether the match currently has zero connected players.
// Safe to call from any goroutine (e.g. the registry's sweep), since it
// reads the atomic mirror Join/Leave maintain rather than a plain field.
func (m *Match) IsEmpty() bool { return m.isEmptyAtomic.Load() }

// EmptySince returns the time the match became empty; zero if not empty.
// Safe to call from any goroutine, for the same reason as IsEmpty.
func (m *Match) EmptySince() time.Time {
	nanos := m.emptySinceUnixNano.Load()
	if nanos == 0 {
		return time.Time{}
	}
	return time.Unix(0, nanos)
}

// PlayerCount reports the number of currently connected players. Safe to
// call from any goroutine — unlike len(m.Players), which races with
// Join/Leave mutating the map from the match's own Runner goroutine.
func (m *Match) PlayerCount() int { return int(m.playerCount.Load()) }

// PhaseSnapshot reports the match's current lifecycle phase. Safe to call
// from any goroutine; the registry uses this instead of reading Phase
// directly, which is only safe from the match's own Runner goroutine.
func (m *Match) PhaseSnapshot() Phase { return Phase(m.phaseAtomic.Load()) }

// StartGame transitions PhaseWaiting -> PhasePlaying. Only the host may
// call it.
func (m *Match) StartGame(sessionID string) error {
	if !m.IsHost(sessionID) {
		return ErrNotHost
	}
	m.Phase = PhasePlaying
	m.phaseAtomic.Store(int32(PhasePlaying))
	m.sink.BroadcastEvent("game-started", map[string]any{"matchId": m.ID})
	return nil
}

// EndGame transitions to PhaseEnded early. Only the host may call it.
func (m *Match) EndGame(sessionID string) error {
	if !m.IsHost(sessionID) {
		return ErrNotHost
	}
	m.endMatch()
	return nil
}

func (m *Match) endMatch() {
	m.Phase = PhaseEnded
	m.phaseAtomic.Store(int32(PhaseEnded))
	m.sink.BroadcastEvent("game-over", map[string]any{
		"redScore":  m.Goals.RedScore,
		"blueScore": m.Goals.BlueScore,
	})
}

// SubmitInput routes a batch of input records to a player's queue.
func (m *Match) SubmitInput(sessionID string, records []InputRecord) error {
	p, ok := m.Players[sessionID]
	if !ok {
		return ErrUnknownPlayer
	}
	m.Input.Submit(p, records)
	return nil
}

// Kick applies an explicit client-requested ball kick.
func (m *Match) Kick(sessionID string, ix, iy, iz float32) error {
	p, ok := m.Players[sessionID]
	if !ok {
		return ErrUnknownPlayer
	}
	if ev, ok := m.Contact.ApplyKick(p, m.Ball, m.World, ix, iy, iz); ok {
		m.sink.BroadcastEvent("ball-kicked", touchEventPayload(ev))
	}
	return nil
}

// UpdateState toggles a whitelisted client-visible flag directly (used for
// cosmetic client-driven states that aren't derived from power-ups).
func (m *Match) UpdateState(sessionID, key string, value bool) error {
	p, ok := m.Players[sessionID]
	if !ok {
		return ErrUnknownPlayer
	}
	switch key {
	case "invisible":
		p.Invisible = value
	case "giant":
		p.Giant = value
		if value {
			m.World.SetColliderRadius(p.Body, config.GiantRadius)
		} else {
			m.World.SetColliderRadius(p.Body, config.PlayerRadius)
		}
	}
	return nil
}

func touchEventPayload(ev TouchEvent) map[string]any {
	return map[string]any{
		"sessionId": ev.SessionID,
		"kicked":    ev.Kicked,
		"ballX":     ev.BallPos.X(),
		"ballY":     ev.BallPos.Y(),
		"ballZ":     ev.BallPos.Z(),
	}
}
