package match

import (
	"time"

	"github.com/fenixsports/soccer-server/internal/config"
)

// Intent is a deferred mutation applied to a Match from its own Runner
// goroutine, never directly from a connection's goroutine. This is how the
// NetAdapter's concurrent readers hand off join/input/kick/state requests
// without taking a lock inside the physics step. Chat does not go through
// an Intent; the connection fans it out directly.
type Intent func(*Match)

// Runner drives one Match's SimLoop: a single goroutine that, every tick,
// drains queued intents and then steps the match exactly once. Physics,
// contact, and boundary code never suspends — it all runs synchronously
// inside Step, called from this one goroutine.
type Runner struct {
	m       *Match
	intents chan Intent
	stop    chan struct{}
	stopped chan struct{}
}

// intentQueueCap bounds how many pending intents a Runner will buffer
// before silently dropping the newest; a saturated queue means the match is
// already falling behind; io, not the physics step, would be for blame.
const intentQueueCap = 256

// NewRunner wraps a Match with its own SimLoop goroutine, not yet started.
func NewRunner(m *Match) *Runner {
	return &Runner{
		m:       m,
		intents: make(chan Intent, intentQueueCap),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Enqueue hands an intent to the match's own goroutine. Returns false if the
// queue is full (the caller should treat this like dropped input, not an
// error worth surfacing to the client).
func (r *Runner) Enqueue(fn Intent) bool {
	select {
	case r.intents <- fn:
		return true
	default:
		return false
	}
}

// patchEvery is how many sim ticks separate two snapshot publishes, per
// TICK_RATE/PATCH_RATE (60/30 = every other tick).
const patchEvery = config.TickRate / config.PatchRate

// Run blocks, ticking the match at TickInterval until Stop is called. Meant
// to be launched with `go runner.Run()`.
func (r *Runner) Run() {
	defer close(r.stopped)

	ticker := time.NewTicker(config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			r.drain()
			r.m.Step(now)
			if r.m.CurrentTick%patchEvery == 0 {
				r.m.Publish()
			}
		}
	}
}

func (r *Runner) drain() {
	for {
		select {
		case fn := <-r.intents:
			fn(r.m)
		default:
			return
		}
	}
}

// Stop signals the Runner's goroutine to exit and blocks until it has.
func (r *Runner) Stop() {
	close(r.stop)
	<-r.stopped
}
