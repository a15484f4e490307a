package match

import (
	"testing"

	"github.com/fenixsports/soccer-server/internal/config"
)

func TestIntegratePlayer_JumpEdgeTriggerFiresOnce(t *testing.T) {
	p := NewPlayer("s1", TeamRed, "default")
	p.ResetToSpawn()

	integratePlayer(p, InputRecord{JumpRequestID: 1}, nil, config.FixedTimestep32)
	if p.VY <= 0 {
		t.Fatalf("expected jump to set positive VY, got %v", p.VY)
	}
	if p.JumpCount != 1 {
		t.Fatalf("expected JumpCount = 1, got %d", p.JumpCount)
	}

	// A replayed fallback input (same JumpRequestID) must never re-fire,
	// even though it is the exact ConsumeOne() fallback shape.
	p.VY = 0
	integratePlayer(p, InputRecord{JumpRequestID: 1}, nil, config.FixedTimestep32)
	if p.VY != -config.Gravity*config.FixedTimestep32 {
		t.Fatalf("replayed jumpRequestId must not re-trigger a jump, VY = %v", p.VY)
	}
}

func TestIntegratePlayer_DoubleJumpWeaker(t *testing.T) {
	p := NewPlayer("s1", TeamRed, "default")
	p.ResetToSpawn()
	p.Y = 1 // airborne, so ground-reset doesn't clear JumpCount

	integratePlayer(p, InputRecord{JumpRequestID: 1}, nil, config.FixedTimestep32)
	firstJumpVY := p.VY

	integratePlayer(p, InputRecord{JumpRequestID: 2}, nil, config.FixedTimestep32)
	secondJumpVY := p.VY

	if secondJumpVY >= firstJumpVY {
		t.Fatalf("double jump should be weaker than the first: first=%v second=%v", firstJumpVY, secondJumpVY)
	}
}

func TestIntegratePlayer_ThirdJumpRequestIgnored(t *testing.T) {
	p := NewPlayer("s1", TeamRed, "default")
	p.ResetToSpawn()
	p.Y = 1

	integratePlayer(p, InputRecord{JumpRequestID: 1}, nil, config.FixedTimestep32)
	integratePlayer(p, InputRecord{JumpRequestID: 2}, nil, config.FixedTimestep32)
	if p.JumpCount != config.MaxJumps {
		t.Fatalf("expected JumpCount = MaxJumps(%d), got %d", config.MaxJumps, p.JumpCount)
	}

	p.VY = 0
	integratePlayer(p, InputRecord{JumpRequestID: 3}, nil, config.FixedTimestep32)
	if p.VY != -config.Gravity*config.FixedTimestep32 {
		t.Fatalf("a third jump beyond MaxJumps must be ignored, VY = %v", p.VY)
	}
}

func TestIntegratePlayer_InstantStopWhenNoInput(t *testing.T) {
	p := NewPlayer("s1", TeamRed, "default")
	p.VX, p.VZ = 5, 5

	integratePlayer(p, InputRecord{X: 0, Z: 0}, nil, config.FixedTimestep32)
	if p.VX != 0 || p.VZ != 0 {
		t.Fatalf("expected instant stop on zero input, got (%v, %v)", p.VX, p.VZ)
	}
}

func TestIntegratePlayer_ClampsToArenaBounds(t *testing.T) {
	p := NewPlayer("s1", TeamRed, "default")
	p.X = config.ArenaHalfWidth - 0.01
	p.VX = 100

	integratePlayer(p, InputRecord{X: 1, Z: 0}, nil, config.FixedTimestep32)
	if p.X > config.ArenaHalfWidth {
		t.Fatalf("expected X clamped to ArenaHalfWidth, got %v", p.X)
	}
}
