package match

import (
	"sort"

	"github.com/fenixsports/soccer-server/internal/config"
)

// InputRouter applies the per-client ordered-queue contract of spec §4.3.
// It holds no state of its own — queues live on the Player — so it is safe
// to treat as a stateless set of functions called from the Match executor.
type InputRouter struct{}

// NewInputRouter constructs an InputRouter.
func NewInputRouter() *InputRouter { return &InputRouter{} }

// Submit accepts a batch (already sorted or not) of input records for a
// player. Records are sorted ascending by tick, then each is accepted iff
// record.tick > player.LastReceivedTick at the time it is considered —
// silently dropping anything else (§7 validation policy: never disconnect).
func (ir *InputRouter) Submit(p *Player, records []InputRecord) {
	sorted := make([]InputRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Tick < sorted[j].Tick })

	for _, rec := range sorted {
		if rec.Tick <= p.LastReceivedTick {
			continue
		}
		if !rotYValid(rec.RotY) {
			continue
		}
		rec.X = clampAxis(rec.X)
		rec.Z = clampAxis(rec.Z)
		p.LastReceivedTick = rec.Tick
		p.inputQueue = append(p.inputQueue, rec)
	}

	// Anti-flood cap: trim oldest beyond INPUT_QUEUE_MAX.
	if excess := len(p.inputQueue) - config.InputQueueMax; excess > 0 {
		p.inputQueue = p.inputQueue[excess:]
	}
}

// ConsumeOne pops exactly one record per tick call (shift-from-head). On an
// empty queue it replays LastInput with movement zeroed but JumpRequestID
// preserved, so a stale jump intent never re-fires (§4.3 fallback contract).
func (ir *InputRouter) ConsumeOne(p *Player) InputRecord {
	if len(p.inputQueue) == 0 {
		fallback := p.LastInput
		fallback.X = 0
		fallback.Z = 0
		return fallback
	}

	rec := p.inputQueue[0]
	p.inputQueue = p.inputQueue[1:]
	p.LastInput = rec
	return rec
}
