package match

import "testing"

func TestNewPlayer_StartsWithNeutralMultipliers(t *testing.T) {
	p := NewPlayer("s1", TeamBlue, "default")
	if p.SpeedMult != 1 || p.JumpMult != 1 || p.KickMult != 1 {
		t.Fatalf("expected neutral multipliers on a fresh player, got %+v", p)
	}
	if p.Team != TeamBlue || p.SessionID != "s1" {
		t.Fatalf("expected session/team carried from constructor, got %+v", p)
	}
}

func TestSpawnFor_PlacesTeamsOnOppositeSides(t *testing.T) {
	rx, _, _ := SpawnFor(TeamRed)
	bx, _, _ := SpawnFor(TeamBlue)
	if rx >= 0 || bx <= 0 {
		t.Fatalf("expected red spawn negative X and blue spawn positive X, got red=%v blue=%v", rx, bx)
	}
}

func TestPlayer_HorizontalSpeedIgnoresVerticalVelocity(t *testing.T) {
	p := NewPlayer("s1", TeamRed, "default")
	p.VX, p.VY, p.VZ = 3, 100, 4
	if got, want := p.HorizontalSpeed(), float32(5); got != want {
		t.Fatalf("expected horizontal speed 5 (3-4-5 triangle) ignoring VY, got %v", got)
	}
}

func TestPlayer_ResetToSpawnZeroesVelocityAndJumpCount(t *testing.T) {
	p := NewPlayer("s1", TeamRed, "default")
	p.VX, p.VY, p.VZ = 1, 2, 3
	p.JumpCount = 2
	p.X, p.Y, p.Z = 99, 99, 99

	p.ResetToSpawn()

	wantX, wantY, wantZ := SpawnFor(TeamRed)
	if p.X != wantX || p.Y != wantY || p.Z != wantZ {
		t.Fatalf("expected player snapped to spawn, got (%v,%v,%v)", p.X, p.Y, p.Z)
	}
	if p.VX != 0 || p.VY != 0 || p.VZ != 0 {
		t.Fatalf("expected velocity zeroed after reset")
	}
	if p.JumpCount != 0 {
		t.Fatalf("expected jump count zeroed after reset")
	}
}
