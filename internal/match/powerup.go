package match

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/fenixsports/soccer-server/internal/config"
	"github.com/fenixsports/soccer-server/internal/physics"
)

// PowerUp is a ground pickup at a fixed position until collected or it
// times out.
type PowerUp struct {
	ID        string
	Type      PowerUpType
	X, Y, Z   float32
	spawnedAt time.Time
}

// PowerUpService owns spawn cadence, despawn timeouts, and effect
// application/expiry. All state is tick-driven (deadlines compared against
// the match's logical clock) rather than goroutine timers, since physics
// code must not suspend (§5).
type PowerUpService struct {
	lastSpawnAt time.Time
}

// NewPowerUpService creates a service with its spawn clock starting now.
func NewPowerUpService(now time.Time) *PowerUpService {
	return &PowerUpService{lastSpawnAt: now}
}

// Tick spawns a new power-up if the interval has elapsed and capacity
// allows, and despawns any that have exceeded their ground lifetime.
func (s *PowerUpService) Tick(now time.Time, active map[string]*PowerUp, arenaHalfWidth, arenaHalfDepth float32) (spawned *PowerUp, despawned []string) {
	for id, pu := range active {
		if now.Sub(pu.spawnedAt) >= config.PowerupLifetime {
			despawned = append(despawned, id)
		}
	}
	for _, id := range despawned {
		delete(active, id)
	}

	if now.Sub(s.lastSpawnAt) < config.PowerupSpawnInterval {
		return nil, despawned
	}
	s.lastSpawnAt = now

	if len(active) >= config.MaxActivePowerups {
		return nil, despawned
	}

	pu := &PowerUp{
		ID:        uuid.NewString(),
		Type:      allPowerUpTypes[rand.Intn(len(allPowerUpTypes))],
		X:         (rand.Float32()*2 - 1) * arenaHalfWidth * 0.85,
		Y:         0.5,
		Z:         (rand.Float32()*2 - 1) * arenaHalfDepth * 0.85,
		spawnedAt: now,
	}
	active[pu.ID] = pu
	return pu, despawned
}

// TryCollect checks proximity (< PICKUP_RANGE horizontally) between a
// player and any active power-up and applies the effect on a hit, removing
// the power-up from the active set.
func TryCollect(p *Player, active map[string]*PowerUp, now time.Time, world *physics.World, ball *Ball) (collected *PowerUp) {
	for id, pu := range active {
		dx := p.X - pu.X
		dz := p.Z - pu.Z
		if vec3(dx, 0, dz).Len() < config.PowerupPickupRange {
			delete(active, id)
			applyPowerUpEffect(p, pu.Type, now, world, ball)
			return pu
		}
	}
	return nil
}

func applyPowerUpEffect(p *Player, t PowerUpType, now time.Time, world *physics.World, ball *Ball) {
	expiry := now.Add(config.PowerupEffectDuration)
	switch t {
	case PowerUpSpeed:
		p.speedRampStart = now
		p.speedRampFrom = p.SpeedMult
		p.speedRampTo = config.SpeedPowerupMult
		p.speedRampUntil = expiry
	case PowerUpJump:
		p.JumpMult = config.JumpPowerupMult
		p.jumpEffectUntil = expiry
	case PowerUpKick:
		p.KickMult = config.KickPowerupMult
		p.kickEffectUntil = expiry
	case PowerUpInvisible:
		p.Invisible = true
		p.invisEffectUntil = expiry
	case PowerUpGiant:
		p.Giant = true
		p.giantEffectUntil = expiry
		growGiantCollider(p, world)
		keepBallSafeFromGiant(p, world, ball)
	}
}

// growGiantCollider swaps the player's kinematic collider to GiantRadius,
// matching the manual update-state path at Match.UpdateState.
func growGiantCollider(p *Player, world *physics.World) {
	if world == nil {
		return
	}
	world.SetColliderRadius(p.Body, config.GiantRadius)
}

// shrinkGiantCollider restores the normal player collider radius once the
// giant effect expires.
func shrinkGiantCollider(p *Player, world *physics.World) {
	if world == nil {
		return
	}
	world.SetColliderRadius(p.Body, config.PlayerRadius)
}

// keepBallSafeFromGiant implements the §4.8 giant pickup safety step: a ball
// within GiantSafetyRadius of the newly-enlarged player is teleported
// GiantSafetyPushDistance away (along the player->ball direction, or an
// arbitrary direction if the ball sits exactly on the player) with a small
// kick impulse, so the enlarged collider doesn't spawn inside it.
func keepBallSafeFromGiant(p *Player, world *physics.World, ball *Ball) {
	if world == nil || ball == nil {
		return
	}

	dx := ball.X - p.X
	dz := ball.Z - p.Z
	dir := vec3(dx, 0, dz)
	if dir.Len() >= config.GiantSafetyRadius {
		return
	}
	if dir.Len() < 1e-4 {
		dir = vec3(1, 0, 0)
	} else {
		dir = dir.Normalize()
	}

	ball.X = p.X + dir.X()*config.GiantSafetyPushDistance
	ball.Z = p.Z + dir.Z()*config.GiantSafetyPushDistance
	ball.VX = dir.X() * config.GiantSafetyKickImpulse
	ball.VY = config.KickVerticalBoost
	ball.VZ = dir.Z() * config.GiantSafetyKickImpulse
	ball.syncToWorld(world)
}

// speedRampDuration phases: a linear ramp up over the first 500ms, hold,
// then a linear ramp down over the last 1s of the effect before returning
// to 1.
const (
	speedRampUpDuration   = 500 * time.Millisecond
	speedRampDownDuration = 1 * time.Second
)

// TickEffects advances every timed power-up effect on a player: the speed
// ramp curve and the hard jump/kick/invisible/giant expirations. Called
// once per sim tick from the Match.
func TickEffects(p *Player, now time.Time, world *physics.World) {
	tickSpeedRamp(p, now)

	if p.JumpMult != 1 && !p.jumpEffectUntil.IsZero() && now.After(p.jumpEffectUntil) {
		p.JumpMult = 1
	}
	if p.KickMult != 1 && !p.kickEffectUntil.IsZero() && now.After(p.kickEffectUntil) {
		p.KickMult = 1
	}
	if p.Invisible && !p.invisEffectUntil.IsZero() && now.After(p.invisEffectUntil) {
		p.Invisible = false
	}
	if p.Giant && !p.giantEffectUntil.IsZero() && now.After(p.giantEffectUntil) {
		p.Giant = false
		shrinkGiantCollider(p, world)
	}
}

func tickSpeedRamp(p *Player, now time.Time) {
	if p.speedRampUntil.IsZero() {
		return
	}

	rampDownStart := p.speedRampUntil.Add(-speedRampDownDuration)

	switch {
	case now.Before(p.speedRampStart.Add(speedRampUpDuration)):
		frac := float32(now.Sub(p.speedRampStart)) / float32(speedRampUpDuration)
		p.SpeedMult = p.speedRampFrom + (p.speedRampTo-p.speedRampFrom)*clamp01(frac)
	case now.Before(rampDownStart):
		p.SpeedMult = p.speedRampTo
	case now.Before(p.speedRampUntil):
		frac := float32(now.Sub(rampDownStart)) / float32(speedRampDownDuration)
		p.SpeedMult = p.speedRampTo + (1-p.speedRampTo)*clamp01(frac)
	default:
		p.SpeedMult = 1
		p.speedRampUntil = time.Time{}
	}
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
