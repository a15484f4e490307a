package match

import (
	"testing"

	"github.com/fenixsports/soccer-server/internal/config"
	"github.com/fenixsports/soccer-server/internal/physics"
)

func newTestWorldWithBall(ball *Ball) *physics.World {
	world := physics.NewWorld(vec3(0, -config.Gravity, 0))
	ball.Body = world.AddDynamicSphere(vec3(ball.X, ball.Y, ball.Z), config.BallRadius, config.BallMass, config.PlayerBallRestitution, 0.05, 0.1, true)
	return world
}

func TestContactResolver_StabilityModeCarriesBallOnHead(t *testing.T) {
	cr := NewContactResolver()
	p := NewPlayer("s1", TeamRed, "default")
	p.X, p.Y, p.Z = 0, 0.1, 0
	p.VX, p.VZ = 1.0, 0 // below BallStabilityVelocityThresh relative to the stationary ball

	ball := NewBall()
	ball.X, ball.Y, ball.Z = 0, p.Y+config.PlayerRadius+config.BallRadius-0.1, 0
	world := newTestWorldWithBall(ball)
	ball.syncToWorld(world)

	cr.Resolve([]*Player{p}, ball, world)

	if ball.VX != p.VX {
		t.Fatalf("expected ball to match player's horizontal velocity in stability mode, got %v want %v", ball.VX, p.VX)
	}
	if ball.OwnerSessionID != p.SessionID {
		t.Fatalf("expected ball owner to be the carrying player")
	}
}

func TestContactResolver_ApplyKickRequiresRange(t *testing.T) {
	cr := NewContactResolver()
	p := NewPlayer("s1", TeamRed, "default")
	p.X, p.Y, p.Z = 0, 0.1, 0

	ball := NewBall()
	ball.X, ball.Y, ball.Z = config.KickRange+1, 0.1, 0
	world := newTestWorldWithBall(ball)
	ball.syncToWorld(world)

	if _, ok := cr.ApplyKick(p, ball, world, 1, 0, 0); ok {
		t.Fatalf("expected kick to be rejected when ball is out of KickRange")
	}
}

func TestContactResolver_ApplyKickAppliesImpulseWithinRange(t *testing.T) {
	cr := NewContactResolver()
	p := NewPlayer("s1", TeamRed, "default")
	p.X, p.Y, p.Z = 0, 0.1, 0

	ball := NewBall()
	ball.X, ball.Y, ball.Z = 1, 0.1, 0
	world := newTestWorldWithBall(ball)
	ball.syncToWorld(world)

	ev, ok := cr.ApplyKick(p, ball, world, 10, 0, 0)
	if !ok {
		t.Fatalf("expected kick within range to succeed")
	}
	if !ev.Kicked {
		t.Fatalf("expected TouchEvent.Kicked = true")
	}
	if ball.VX <= 0 {
		t.Fatalf("expected positive VX after kick impulse, got %v", ball.VX)
	}
	if p.Stats.Shots != 1 {
		t.Fatalf("expected shot counter incremented, got %d", p.Stats.Shots)
	}
}

func TestContactResolver_RecordTouchTracksLastTwoDistinctTouchers(t *testing.T) {
	cr := NewContactResolver()
	cr.recordTouch("a")
	cr.recordTouch("a") // repeated touch by same player must not shift history
	cr.recordTouch("b")

	if cr.TouchHistory[0] != "b" || cr.TouchHistory[1] != "a" {
		t.Fatalf("unexpected touch history: %+v", cr.TouchHistory)
	}
}
