package match

import (
	"github.com/fenixsports/soccer-server/internal/config"
	"github.com/fenixsports/soccer-server/internal/physics"
)

// integratePlayer runs one tick of §4.4 player movement: instant-stop
// horizontal velocity, constant gravity, the jump edge-trigger, ground
// snapping, arena clamping, and finally the kinematic translation commit.
func integratePlayer(p *Player, in InputRecord, world *physics.World, dt float32) {
	speed := config.MoveSpeed * p.SpeedMult

	if in.X == 0 && in.Z == 0 {
		p.VX, p.VZ = 0, 0
	} else {
		p.VX += (in.X*speed - p.VX) * config.VelocitySmoothing
		p.VZ += (in.Z*speed - p.VZ) * config.VelocitySmoothing
	}

	p.VY -= config.Gravity * dt

	if p.Y <= config.GroundY+config.GroundCheckEpsilon && p.VY <= 0 {
		p.JumpCount = 0
	}

	applyJumpEdgeTrigger(p, in)

	newX := p.X + p.VX*dt
	newY := p.Y + p.VY*dt
	newZ := p.Z + p.VZ*dt

	if newY < config.GroundY {
		newY = config.GroundY
		p.VY = 0
		p.JumpCount = 0
	}

	if newX > config.ArenaHalfWidth {
		newX = config.ArenaHalfWidth
	} else if newX < -config.ArenaHalfWidth {
		newX = -config.ArenaHalfWidth
	}
	if newZ > config.ArenaHalfDepth {
		newZ = config.ArenaHalfDepth
	} else if newZ < -config.ArenaHalfDepth {
		newZ = -config.ArenaHalfDepth
	}

	p.X, p.Y, p.Z = newX, newY, newZ
	p.RotY = in.RotY

	if world != nil && p.Body != 0 {
		world.SetTranslation(p.Body, vec3(p.X, p.Y, p.Z))
	}
}

// applyJumpEdgeTrigger fires a jump iff the client's jump-request-id is
// strictly newer than the last one we processed and the player has jumps
// remaining. A replayed jumpRequestId (the fallback-input case) never
// re-triggers because it is never greater than LastProcessedJumpRequestID.
func applyJumpEdgeTrigger(p *Player, in InputRecord) {
	if in.JumpRequestID <= p.LastProcessedJumpRequestID {
		return
	}
	if p.JumpCount >= config.MaxJumps {
		return
	}

	p.LastProcessedJumpRequestID = in.JumpRequestID
	p.JumpCount++

	if p.JumpCount == 1 {
		p.VY = config.JumpForce * p.JumpMult
	} else {
		p.VY = config.JumpForce * p.JumpMult * config.DoubleJumpMultiplier
	}
}
