package match

import "github.com/fenixsports/soccer-server/internal/config"

// BoundaryEnforcer is the safety net clamping the ball against the
// zone-aware envelope of §4.6, run after the PhysicsWorld step and the
// ContactResolver. Idempotent per tick: applying it twice in a row to the
// same state yields the same state.
type BoundaryEnforcer struct{}

// NewBoundaryEnforcer constructs a BoundaryEnforcer.
func NewBoundaryEnforcer() *BoundaryEnforcer { return &BoundaryEnforcer{} }

// Enforce clamps the ball's position/velocity in place.
func (be *BoundaryEnforcer) Enforce(ball *Ball) {
	be.enforceX(ball)
	be.enforceZ(ball)
	be.enforceY(ball)
}

func (be *BoundaryEnforcer) enforceX(ball *Ball) {
	inGoalOpening := ball.X > config.GoalLineX && ball.Z < config.GoalHalfWidth && ball.Z > -config.GoalHalfWidth && ball.Y < config.GoalHeight
	inGoalOpeningNeg := ball.X < -config.GoalLineX && ball.Z < config.GoalHalfWidth && ball.Z > -config.GoalHalfWidth && ball.Y < config.GoalHeight

	limit := config.ArenaHalfWidth - config.BallRadius
	switch {
	case inGoalOpening:
		deepLimit := config.GoalBackX - config.BallRadius
		if ball.X > deepLimit {
			ball.X = deepLimit
			ball.VX = -ball.VX * config.GoalRestitution
		}
	case inGoalOpeningNeg:
		deepLimit := -(config.GoalBackX - config.BallRadius)
		if ball.X < deepLimit {
			ball.X = deepLimit
			ball.VX = -ball.VX * config.GoalRestitution
		}
	default:
		if ball.X > limit {
			ball.X = limit
			ball.VX = -ball.VX * config.WallRestitution
		} else if ball.X < -limit {
			ball.X = -limit
			ball.VX = -ball.VX * config.WallRestitution
		}
	}
}

func (be *BoundaryEnforcer) enforceZ(ball *Ball) {
	deepInGoal := ball.X > config.ArenaHalfWidth || ball.X < -config.ArenaHalfWidth

	if deepInGoal {
		netLimit := config.GoalHalfWidth - config.BallRadius
		if ball.Z > netLimit || ball.Z < -netLimit {
			// The ball is closer than one radius to the net side walls at
			// |z| = GoalHalfWidth — push it back out to the arena wall
			// instead of clamping it into the net geometry.
			limit := config.ArenaHalfWidth - config.BallRadius
			if ball.X > 0 {
				ball.X = limit
			} else {
				ball.X = -limit
			}
			ball.VX = -ball.VX * config.WallRestitution
		}
		return
	}

	limit := config.ArenaHalfDepth - config.BallRadius
	if ball.Z > limit {
		ball.Z = limit
		ball.VZ = -ball.VZ * config.WallRestitution
	} else if ball.Z < -limit {
		ball.Z = -limit
		ball.VZ = -ball.VZ * config.WallRestitution
	}
}

func (be *BoundaryEnforcer) enforceY(ball *Ball) {
	if ball.Y < config.BallRadius {
		ball.Y = config.BallRadius
		ball.VY = -ball.VY * config.GroundRestitution
	}
	ceiling := config.WallHeight - config.BallRadius
	if ball.Y > ceiling {
		ball.Y = ceiling
		ball.VY = -ball.VY * config.CeilingDamp
	}
}
