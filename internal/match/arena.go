package match

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fenixsports/soccer-server/internal/config"
	"github.com/fenixsports/soccer-server/internal/physics"
)

// BuildArena registers the authoritative static geometry of §4.2 into a
// fresh PhysicsWorld, matching the same arena/goal constants the
// BoundaryEnforcer and GoalAdjudicator use for their analytic checks:
// ground, back walls, side-wall segments either side of the goal gaps, goal
// back walls, posts, crossbars, and net side walls.
func BuildArena(world *physics.World) {
	ident := mgl32.QuatIdent()
	crossbarRot := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})

	halfW := float32(config.ArenaHalfWidth)
	halfD := float32(config.ArenaHalfDepth)
	ceiling := float32(config.WallHeight)
	goalLineX := float32(config.GoalLineX)
	goalBackX := float32(config.GoalBackX)
	goalHalfWidth := float32(config.GoalHalfWidth)
	goalHeight := float32(config.GoalHeight)

	// Ground slab.
	world.AddStaticCuboid(mgl32.Vec3{0, -0.25, 0}, ident, mgl32.Vec3{halfW, 0.25, halfD}, 0.8, 0.1)

	// Back walls (no goal gap along the Z ends).
	world.AddStaticCuboid(mgl32.Vec3{0, ceiling / 2, halfD + 0.25}, ident, mgl32.Vec3{halfW, ceiling / 2, 0.25}, 0.5, 0.3)
	world.AddStaticCuboid(mgl32.Vec3{0, ceiling / 2, -(halfD + 0.25)}, ident, mgl32.Vec3{halfW, ceiling / 2, 0.25}, 0.5, 0.3)

	// Side walls along X, broken by the goal gap at |z| < goalHalfWidth.
	sideHalfDepth := (halfD - goalHalfWidth) / 2
	sideCenterZ := goalHalfWidth + sideHalfDepth
	for _, sx := range []float32{halfW + 0.25, -(halfW + 0.25)} {
		for _, sz := range []float32{sideCenterZ, -sideCenterZ} {
			world.AddStaticCuboid(mgl32.Vec3{sx, ceiling / 2, sz}, ident, mgl32.Vec3{0.25, ceiling / 2, sideHalfDepth}, 0.5, 0.3)
		}
	}

	// Goal back walls sealing the net at goalBackX.
	for _, sx := range []float32{goalBackX + 0.2, -(goalBackX + 0.2)} {
		world.AddStaticCuboid(mgl32.Vec3{sx, goalHeight / 2, 0}, ident, mgl32.Vec3{0.2, goalHeight / 2, goalHalfWidth}, 0.5, 0.3)
	}

	// Vertical goal posts at the goal line, either side of the opening.
	for _, px := range []float32{goalLineX, -goalLineX} {
		for _, pz := range []float32{goalHalfWidth, -goalHalfWidth} {
			world.AddStaticCylinder(mgl32.Vec3{px, goalHeight / 2, pz}, ident, 0.1, goalHeight, 0.4, 0.2)
		}
	}

	// Crossbars spanning the goal mouth at goalHeight.
	world.AddStaticCylinder(mgl32.Vec3{goalLineX, goalHeight, 0}, crossbarRot, 0.1, 2*goalHalfWidth, 0.4, 0.2)
	world.AddStaticCylinder(mgl32.Vec3{-goalLineX, goalHeight, 0}, crossbarRot, 0.1, 2*goalHalfWidth, 0.4, 0.2)

	// Net side walls sealing the net tunnel from goalLineX to goalBackX.
	netDepth := goalBackX - goalLineX
	netCenterX := (goalLineX + goalBackX) / 2
	for _, sx := range []float32{netCenterX, -netCenterX} {
		world.AddStaticCuboid(mgl32.Vec3{sx, goalHeight / 2, goalHalfWidth}, ident, mgl32.Vec3{netDepth / 2, goalHeight / 2, 0.1}, 0.3, 0.1)
		world.AddStaticCuboid(mgl32.Vec3{sx, goalHeight / 2, -goalHalfWidth}, ident, mgl32.Vec3{netDepth / 2, goalHeight / 2, 0.1}, 0.3, 0.1)
	}

	// Ceiling.
	world.AddStaticCuboid(mgl32.Vec3{0, ceiling, 0}, ident, mgl32.Vec3{halfW, 0.1, halfD}, 0.1, 0.1)
}
