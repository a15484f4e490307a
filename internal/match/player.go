package match

import (
	"time"

	"github.com/fenixsports/soccer-server/internal/config"
	"github.com/fenixsports/soccer-server/internal/physics"
)

// Player is a connected participant. Pose and velocity are authoritative —
// the client predicts locally and reconciles against snapshots of this
// state. Mutated only from the Match's sim goroutine.
type Player struct {
	SessionID string
	Team      Team
	Character string

	X, Y, Z float32
	RotY    float32
	VX, VY, VZ float32

	JumpCount                  int
	LastProcessedJumpRequestID uint32

	inputQueue       []InputRecord // bounded ring, oldest at index 0
	LastInput        InputRecord
	LastReceivedTick uint64

	ResetPosition bool

	SpeedMult float32
	JumpMult  float32
	KickMult  float32

	Invisible bool
	Giant     bool

	Stats PlayerStats

	Body physics.BodyHandle

	speedRampUntil   time.Time
	speedRampFrom    float32
	speedRampTo      float32
	speedRampStart   time.Time
	jumpEffectUntil  time.Time
	kickEffectUntil  time.Time
	invisEffectUntil time.Time
	giantEffectUntil time.Time
}

// NewPlayer creates a player with neutral multipliers and no queued input.
func NewPlayer(sessionID string, team Team, character string) *Player {
	return &Player{
		SessionID: sessionID,
		Team:      team,
		Character: character,
		SpeedMult: 1,
		JumpMult:  1,
		KickMult:  1,
		inputQueue: make([]InputRecord, 0, config.InputQueueMax),
	}
}

// HorizontalSpeed returns |v| over the XZ plane.
func (p *Player) HorizontalSpeed() float32 {
	return vec3(p.VX, 0, p.VZ).Len()
}

// SpawnFor returns the canonical reset position for a team.
func SpawnFor(team Team) (x, y, z float32) {
	if team == TeamRed {
		return -6, config.GroundY, 0
	}
	return 6, config.GroundY, 0
}

// ResetToSpawn snaps the player back to their team's canonical spawn with
// zero velocity, per the reset-positions invariant.
func (p *Player) ResetToSpawn() {
	p.X, p.Y, p.Z = SpawnFor(p.Team)
	p.VX, p.VY, p.VZ = 0, 0, 0
	p.JumpCount = 0
}
