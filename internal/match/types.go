package match

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Team is one of the two sides a player is assigned to.
type Team int

const (
	TeamRed Team = iota
	TeamBlue
)

func (t Team) String() string {
	if t == TeamRed {
		return "red"
	}
	return "blue"
}

// Phase is the match's coarse lifecycle state.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhasePlaying
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePlaying:
		return "playing"
	default:
		return "ended"
	}
}

// InputRecord is one client input sample, as received over the wire.
type InputRecord struct {
	Tick           uint64
	X              float32 // [-1, 1]
	Z              float32 // [-1, 1]
	RotY           float32
	JumpRequestID  uint32
}

// clampAxis restricts a stick axis to [-1, 1].
func clampAxis(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// rotYValid reports whether a client-supplied yaw is a finite angle within
// one full turn either way; out-of-range rotY is a validation-drop case
// (§7), not a clamp case, since it indicates a malformed client rather than
// a merely-excessive stick input.
func rotYValid(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0) && v >= -2*math.Pi && v <= 2*math.Pi
}

// PowerUpType enumerates the pickup effects.
type PowerUpType int

const (
	PowerUpSpeed PowerUpType = iota
	PowerUpKick
	PowerUpJump
	PowerUpInvisible
	PowerUpGiant
)

var allPowerUpTypes = []PowerUpType{PowerUpSpeed, PowerUpKick, PowerUpJump, PowerUpInvisible, PowerUpGiant}

func (t PowerUpType) String() string {
	switch t {
	case PowerUpSpeed:
		return "speed"
	case PowerUpKick:
		return "kick"
	case PowerUpJump:
		return "jump"
	case PowerUpInvisible:
		return "invisible"
	case PowerUpGiant:
		return "giant"
	default:
		return "unknown"
	}
}

// PlayerStats tracks per-player attribution counters.
type PlayerStats struct {
	Goals   int
	Assists int
	Shots   int
}

// vec3 is a small helper to build an mgl32.Vec3 inline.
func vec3(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x, y, z} }
