// Package config holds the tunable constants and server configuration for
// the soccer match server. Physics and timing constants are shared between
// server and client-side reconciliation and must not drift silently.
package config

import "time"

// Network / tick cadence.
const (
	TickRate     = 60 // Hz, SimLoop step cadence
	PatchRate    = 30 // Hz, SnapshotPublisher broadcast cadence
	FixedTimestep = 1.0 / float64(TickRate)
	FixedTimestep32 = float32(1.0 / float64(TickRate))

	TickInterval  = time.Second / time.Duration(TickRate)
	PatchInterval = time.Second / time.Duration(PatchRate)
)

// Match / room lifecycle.
const (
	MaxClients         = 4
	InputQueueMax      = 60
	EmptyDisposeDelay  = 30 * time.Second
	MatchTimerStart    = 300 // seconds
	GoalCooldown       = 5 * time.Second
	GoalResetGrace     = 3 * time.Second
)

// Power-up service.
const (
	PowerupSpawnInterval  = 20 * time.Second
	PowerupLifetime       = 15 * time.Second
	PowerupEffectDuration = 15 * time.Second
	MaxActivePowerups     = 3
	PowerupPickupRange    = 1.5 // meters, horizontal
)

// Join codes.
const (
	JoinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	JoinCodeLen      = 4
	JoinCodeMaxAttempts = 50
)

// Chat / abuse policy.
const (
	ChatMaxLen      = 500
	ChatRateLimit   = 5.0 // messages/sec sustained
	ChatRateBurst   = 5
)

// Player movement & jump.
const (
	MoveSpeed               = 8.0
	Gravity                 = 20.0
	JumpForce               = 8.0
	MaxJumps                = 2
	DoubleJumpMultiplier    = 0.8
	GroundY                 = 0.1
	GroundCheckEpsilon      = 0.05
	VelocitySmoothing       = 0.95
)

// Arena geometry (meters).
const (
	ArenaHalfWidth = 14.5
	ArenaHalfDepth = 9.5
	WallHeight     = 10.0

	GoalLineX   = 10.8
	GoalBackX   = 17.0
	GoalWidth   = 5.0 // full width; half = GOAL_WIDTH/2 = 2.5
	GoalHalfWidth = GoalWidth / 2
	GoalHeight  = 4.0
)

// Ball / contact tuning.
const (
	BallRadius    = 0.8
	PlayerRadius  = 0.4
	GiantRadius   = 2.0
	BallMass      = 1.0
	MaxAngularVel = 15.0 // rad/s

	BallStabilityHeightMin      = 0.3
	BallStabilityVelocityThresh = 1.5
	BallStabilityDamping        = 0.92
	BallStabilityCorrection     = 0.3
	BallStabilityImpulseCap     = 2.0

	CollisionVelocityThreshold = 3.0
	PlayerBallVelocityTransfer = 0.7
	PlayerBallApproachBoost    = 1.4
	PlayerBallRestitution      = 0.85
	PlayerBallImpulseMin       = 8.0

	CollisionLift      = 8.0
	CollisionLiftGiant = 10.0

	KickRange          = 3.0
	KickVerticalBoost  = 2.0

	GiantSafetyRadius       = 3.5 // meters; ball inside this on giant pickup is pushed clear
	GiantSafetyPushDistance = 4.0 // meters the ball is teleported away
	GiantSafetyKickImpulse  = 3.0
)

// Boundary restitution.
const (
	WallRestitution   = 0.3
	GoalRestitution   = 0.3
	GroundRestitution = 0.9
	CeilingDamp       = 0.1
)

// Power-up effect multipliers.
const (
	SpeedPowerupMult = 2.0
	JumpPowerupMult  = 1.5
	KickPowerupMult  = 2.0
)

// ServerConfig is the process-level configuration, overridable via env vars.
type ServerConfig struct {
	Host       string
	Port       int
	EnableCORS bool
}

// DefaultServerConfig returns the baseline server configuration.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:       "0.0.0.0",
		Port:       8080,
		EnableCORS: true,
	}
}
