package match

import (
	"time"

	"github.com/fenixsports/soccer-server/internal/config"
)

// Step advances the match by exactly one fixed tick, in the order spec §4.1
// mandates: consume input, integrate players, step the physics world,
// resolve contacts, enforce boundaries, adjudicate goals, then publish the
// post-step ball state. Called once per TickInterval from the SimLoop
// driver, regardless of phase — waiting/ended matches still step so a
// late-joining client sees consistent idle state.
func (m *Match) Step(now time.Time) {
	defer m.recoverFromPanic()

	m.CurrentTick++

	players := make([]*Player, 0, len(m.Players))
	for _, p := range m.Players {
		in := m.Input.ConsumeOne(p)
		integratePlayer(p, in, m.World, config.FixedTimestep32)
		TickEffects(p, now, m.World)
		if collected := TryCollect(p, m.PowerUps, now, m.World, m.Ball); collected != nil {
			m.sink.BroadcastEvent("powerup-collected", map[string]any{
				"sessionId": p.SessionID,
				"powerUpId": collected.ID,
				"type":      collected.Type.String(),
			})
		}
		players = append(players, p)
	}

	if m.Phase == PhasePlaying {
		m.World.Step(config.FixedTimestep32)
		m.Ball.syncFromWorld(m.World, m.CurrentTick)

		for _, ev := range m.Contact.Resolve(players, m.Ball, m.World) {
			m.sink.BroadcastEvent("ball-touched", touchEventPayload(ev))
		}

		m.Boundary.Enforce(m.Ball)
		m.Ball.syncToWorld(m.World)

		if spawned, despawned := m.PowerUpSvc.Tick(now, m.PowerUps, config.ArenaHalfWidth, config.ArenaHalfDepth); spawned != nil || len(despawned) > 0 {
			if spawned != nil {
				m.sink.BroadcastEvent("powerup-spawned", map[string]any{
					"id": spawned.ID, "type": spawned.Type.String(),
					"x": spawned.X, "y": spawned.Y, "z": spawned.Z,
				})
			}
			for _, id := range despawned {
				m.sink.BroadcastEvent("powerup-despawned", map[string]any{"id": id})
			}
		}

		if !m.resetPending {
			if result, scored := m.Goals.Check(m.Ball, m.Players, m.Contact.TouchHistory, now); scored {
				m.resetPending = true
				m.resetAt = now.Add(config.GoalResetGrace)
				m.sink.BroadcastEvent("goal-scored", map[string]any{
					"team":      result.ScoringTeam.String(),
					"scorerId":  result.ScorerID,
					"assistId":  result.AssistID,
					"redScore":  result.RedScore,
					"blueScore": result.BlueScore,
				})
			}
		} else if !now.Before(m.resetAt) {
			m.resetPending = false
			m.resetMatchState()
			m.sink.BroadcastEvent("game-reset", map[string]any{
				"redScore":  m.Goals.RedScore,
				"blueScore": m.Goals.BlueScore,
			})
		}

		m.TimerRemaining -= config.TickInterval
		if m.TimerRemaining <= 0 {
			m.TimerRemaining = 0
			m.endMatch()
		}
	}
}

// resetMatchState restores the ball and every player to their canonical
// spawn config after the goal reset grace period elapses.
func (m *Match) resetMatchState() {
	m.Ball.ResetToCenter()
	m.Ball.syncToWorld(m.World)
	m.World.SetAngularVelocity(m.Ball.Body, vec3(0, 0, 0))
	m.Contact.TouchHistory = [2]string{}

	for _, p := range m.Players {
		p.ResetToSpawn()
		m.World.SetTranslation(p.Body, vec3(p.X, p.Y, p.Z))
	}
}

// recoverFromPanic implements the fatal-error policy: a panicking tick
// disposes the match rather than taking down the process, since one
// corrupted match must never affect any other running match.
func (m *Match) recoverFromPanic() {
	if r := recover(); r != nil {
		m.corruptAtomic.Store(true)
		m.Phase = PhaseEnded
		m.phaseAtomic.Store(int32(PhaseEnded))
		m.logger.Error().Interface("panic", r).Msg("match step panicked, disposing match")
		m.sink.BroadcastEvent("error", map[string]any{
			"code":    "internal_error",
			"message": "match encountered a fatal error and was closed",
		})
	}
}

// Corrupt reports whether this match suffered a panicking step and should
// be torn down by the registry. Safe to call from any goroutine (the
// registry's sweep calls it concurrently with the match's own Runner
// goroutine), since it reads the atomic recoverFromPanic writes rather
// than a plain field.
func (m *Match) Corrupt() bool { return m.corruptAtomic.Load() }

// Publish emits a snapshot patch through the sink unconditionally. The
// SimLoop driver (Runner.Run) calls it only on PATCH_RATE boundaries, every
// patchEvery ticks.
func (m *Match) Publish() {
	m.sink.BroadcastPatch(BuildSnapshot(m))
}
