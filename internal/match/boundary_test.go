package match

import (
	"testing"

	"github.com/fenixsports/soccer-server/internal/config"
)

func TestBoundaryEnforcer_ClampsGroundAndCeiling(t *testing.T) {
	be := NewBoundaryEnforcer()

	ball := NewBall()
	ball.Y = -1
	ball.VY = -5
	be.Enforce(ball)
	if ball.Y != config.BallRadius {
		t.Fatalf("expected ball snapped to ground at BallRadius, got %v", ball.Y)
	}
	if ball.VY <= 0 {
		t.Fatalf("expected VY reflected positive off the ground, got %v", ball.VY)
	}
}

func TestBoundaryEnforcer_ReflectsOffSideWallOutsideGoalMouth(t *testing.T) {
	be := NewBoundaryEnforcer()

	ball := NewBall()
	ball.X = config.ArenaHalfWidth + 1
	ball.Y = 1
	ball.Z = config.GoalHalfWidth + 1 // outside the goal mouth: a regular wall, not a net
	ball.VX = 5

	be.Enforce(ball)
	if ball.X != config.ArenaHalfWidth-config.BallRadius {
		t.Fatalf("expected ball clamped to the arena wall, got X=%v", ball.X)
	}
	if ball.VX >= 0 {
		t.Fatalf("expected VX reflected negative off the wall, got %v", ball.VX)
	}
}

func TestBoundaryEnforcer_DeepInGoalPastNetWidthIsPushedBackToWall(t *testing.T) {
	be := NewBoundaryEnforcer()

	ball := NewBall()
	// Inside the goal opening and past the arena wall line (deep net
	// territory), but wider than the net clamp (|z| > GoalHalfWidth -
	// BallRadius), so it overlaps the net side wall and must be pushed back
	// to the wall rather than clamped into the net.
	ball.X = (config.ArenaHalfWidth + (config.GoalBackX - config.BallRadius)) / 2
	ball.Y = 1
	ball.Z = config.GoalHalfWidth - config.BallRadius/2
	ball.VX = 5

	be.Enforce(ball)
	if ball.X != config.ArenaHalfWidth-config.BallRadius {
		t.Fatalf("expected ball pushed back to the arena wall limit, got X=%v", ball.X)
	}
}

func TestBoundaryEnforcer_IsIdempotent(t *testing.T) {
	be := NewBoundaryEnforcer()

	ball := NewBall()
	ball.X = config.ArenaHalfWidth + 5
	ball.Y = -2
	ball.Z = config.ArenaHalfDepth + 5
	ball.VX, ball.VY, ball.VZ = 3, -3, 3

	be.Enforce(ball)
	once := *ball
	be.Enforce(ball)

	if ball.X != once.X || ball.Y != once.Y || ball.Z != once.Z {
		t.Fatalf("expected a second Enforce() to be a no-op on already-clamped state: first=%+v second=%+v", once, *ball)
	}
}
