package match

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fenixsports/soccer-server/internal/config"
	"github.com/fenixsports/soccer-server/internal/physics"
)

// Ball is the single dynamic rigid body in a match.
type Ball struct {
	Body physics.BodyHandle

	X, Y, Z       float32
	VX, VY, VZ    float32
	Quat          mgl32.Quat
	Tick          uint64
	OwnerSessionID string
}

// NewBall places the ball at the canonical reset position.
func NewBall() *Ball {
	return &Ball{
		X: 0, Y: 2, Z: 0,
		Quat: mgl32.QuatIdent(),
	}
}

// ResetToCenter restores the ball to its canonical reset config: (0,2,0)
// with zero velocity.
func (b *Ball) ResetToCenter() {
	b.X, b.Y, b.Z = 0, 2, 0
	b.VX, b.VY, b.VZ = 0, 0, 0
	b.Quat = mgl32.QuatIdent()
	b.OwnerSessionID = ""
}

// syncFromWorld copies authoritative pose/velocity out of the PhysicsWorld
// after a step, clamping angular speed to MAX_ANG_VEL.
func (b *Ball) syncFromWorld(world *physics.World, tick uint64) {
	pos := world.Translation(b.Body)
	vel := world.LinearVelocity(b.Body)
	ang := world.AngularVelocity(b.Body)

	if angSpeed := ang.Len(); angSpeed > config.MaxAngularVel {
		ang = ang.Mul(config.MaxAngularVel / angSpeed)
		world.SetAngularVelocity(b.Body, ang)
	}

	b.X, b.Y, b.Z = pos.X(), pos.Y(), pos.Z()
	b.VX, b.VY, b.VZ = vel.X(), vel.Y(), vel.Z()
	b.Quat = world.Rotation(b.Body)
	b.Tick = tick
}

// syncToWorld pushes a position/velocity change made by the contact
// resolver or boundary enforcer back into the PhysicsWorld.
func (b *Ball) syncToWorld(world *physics.World) {
	world.SetTranslation(b.Body, vec3(b.X, b.Y, b.Z))
	world.SetLinearVelocity(b.Body, vec3(b.VX, b.VY, b.VZ))
}
