package match

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/fenixsports/soccer-server/internal/config"
	"github.com/fenixsports/soccer-server/internal/physics"
)

// TouchEvent describes a ball-touched or ball-kicked occurrence, for the
// SnapshotPublisher to broadcast and for goal/assist attribution.
type TouchEvent struct {
	SessionID string
	Kicked    bool
	Impulse   mgl32.Vec3
	BallV     mgl32.Vec3
	BallPos   mgl32.Vec3
}

// ContactResolver implements §4.5's player↔ball contact model: the
// ball-on-head stability mode and the approach-only impulse branch.
type ContactResolver struct {
	// TouchHistory: last and second-last toucher, for goal/assist
	// attribution. Index 0 is most recent.
	TouchHistory [2]string
}

// NewContactResolver creates a resolver with empty touch history.
func NewContactResolver() *ContactResolver { return &ContactResolver{} }

func (cr *ContactResolver) recordTouch(sessionID string) {
	if cr.TouchHistory[0] == sessionID {
		return
	}
	cr.TouchHistory[1] = cr.TouchHistory[0]
	cr.TouchHistory[0] = sessionID
}

// Resolve runs the contact model for every player against the ball, after
// the PhysicsWorld step. Returns any touch events fired this tick.
func (cr *ContactResolver) Resolve(players []*Player, ball *Ball, world *physics.World) []TouchEvent {
	var events []TouchEvent

	for _, p := range players {
		playerRadius := float32(config.PlayerRadius)
		if p.Giant {
			playerRadius = config.GiantRadius
		}

		d := vec3(ball.X-p.X, ball.Y-p.Y, ball.Z-p.Z)
		dist := d.Len()
		combinedRadius := config.BallRadius + playerRadius
		if dist >= combinedRadius || dist < 1e-6 {
			continue
		}
		n := d.Mul(1 / dist)

		relV := vec3(p.VX-ball.VX, p.VY-ball.VY, p.VZ-ball.VZ)

		dy := ball.Y - p.Y
		ny := n.Y()

		if dy > config.BallStabilityHeightMin && ny > 0.5 && relV.Len() < config.BallStabilityVelocityThresh {
			cr.applyStability(p, ball, world)
			continue
		}

		if ev, ok := cr.applyImpulseBranch(p, ball, world, n, relV, dy, ny); ok {
			events = append(events, ev)
		}
	}

	return events
}

// applyStability implements the "ball on head" carry: the ball matches the
// player's horizontal velocity, damps vertically, and is pulled toward a
// resting point above the player's head without ever being lowered.
func (cr *ContactResolver) applyStability(p *Player, ball *Ball, world *physics.World) {
	ball.VX = p.VX
	ball.VY = ball.VY * config.BallStabilityDamping
	ball.VZ = p.VZ

	playerRadius := float32(config.PlayerRadius)
	if p.Giant {
		playerRadius = config.GiantRadius
	}
	targetY := p.Y + playerRadius + config.BallRadius + 0.05

	ball.X += (p.X - ball.X) * config.BallStabilityCorrection
	ball.Z += (p.Z - ball.Z) * config.BallStabilityCorrection
	newY := ball.Y + (targetY-ball.Y)*config.BallStabilityCorrection
	if newY > ball.Y {
		ball.Y = newY
	}

	ball.OwnerSessionID = p.SessionID
	ball.syncToWorld(world)
}

// applyImpulseBranch implements the approach-only momentum-transfer contact.
func (cr *ContactResolver) applyImpulseBranch(p *Player, ball *Ball, world *physics.World, n, relV mgl32.Vec3, dy, ny float32) (TouchEvent, bool) {
	approachSpeed := relV.Dot(n)
	if approachSpeed <= 0 {
		return TouchEvent{}, false
	}

	playerSpeed := p.HorizontalSpeed()
	isRunning := playerSpeed > config.CollisionVelocityThreshold

	var momentumFactor float32
	if isRunning {
		momentumFactor = (playerSpeed / 8) * config.PlayerBallVelocityTransfer
	} else {
		momentumFactor = 0.5
	}

	const eps = 1e-4
	approachDot := (p.VX*n.X() + p.VZ*n.Z()) / (playerSpeed + eps)
	approachBoost := float32(1.0)
	if approachDot > 0.5 {
		approachBoost = config.PlayerBallApproachBoost
	}

	impulseMag := approachSpeed * config.BallMass * (1 + config.PlayerBallRestitution) * momentumFactor * approachBoost

	headGeometryHolds := dy > config.BallStabilityHeightMin && ny > 0.5
	if headGeometryHolds {
		cap := config.BallStabilityImpulseCap * playerSpeed
		if impulseMag > cap {
			impulseMag = cap
		}
	} else if impulseMag < config.PlayerBallImpulseMin {
		impulseMag = config.PlayerBallImpulseMin
	}

	lift := float32(config.CollisionLift)
	if p.Giant {
		lift = config.CollisionLiftGiant
	}

	impulse := vec3(
		n.X()*impulseMag,
		float32(math.Max(0.5, float64(ny*impulseMag)))+lift,
		n.Z()*impulseMag,
	)

	world.ApplyImpulse(ball.Body, impulse)
	ball.syncFromWorld(world, ball.Tick)
	ball.OwnerSessionID = p.SessionID
	cr.recordTouch(p.SessionID)

	return TouchEvent{
		SessionID: p.SessionID,
		Impulse:   impulse,
		BallV:     vec3(ball.VX, ball.VY, ball.VZ),
		BallPos:   vec3(ball.X, ball.Y, ball.Z),
	}, true
}

// ApplyKick implements the explicit client `kick` message: a client-scaled
// impulse applied while the player is within KICK_RANGE of the ball.
func (cr *ContactResolver) ApplyKick(p *Player, ball *Ball, world *physics.World, ix, iy, iz float32) (TouchEvent, bool) {
	dist := vec3(ball.X-p.X, ball.Y-p.Y, ball.Z-p.Z).Len()
	if dist > config.KickRange {
		return TouchEvent{}, false
	}

	impulse := vec3(ix, iy+config.KickVerticalBoost, iz)
	world.ApplyImpulse(ball.Body, impulse)
	ball.syncFromWorld(world, ball.Tick)
	ball.OwnerSessionID = p.SessionID
	cr.recordTouch(p.SessionID)
	p.Stats.Shots++

	return TouchEvent{
		SessionID: p.SessionID,
		Kicked:    true,
		Impulse:   impulse,
		BallV:     vec3(ball.VX, ball.VY, ball.VZ),
		BallPos:   vec3(ball.X, ball.Y, ball.Z),
	}, true
}
