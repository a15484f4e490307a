package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWorld_StepIntegratesGravityOnDynamicBodyOnly(t *testing.T) {
	w := NewWorld(mgl32.Vec3{0, -10, 0})
	dynamic := w.AddDynamicSphere(mgl32.Vec3{0, 5, 0}, 0.8, 1, 0.8, 0, 0, true)
	kinematic := w.AddKinematicSphere(mgl32.Vec3{1, 1, 1}, 0.4)

	w.Step(1.0 / 60)

	if vel := w.LinearVelocity(dynamic); vel.Y() >= 0 {
		t.Fatalf("expected dynamic body to gain downward velocity from gravity, got %v", vel)
	}
	if pos := w.Translation(kinematic); pos != (mgl32.Vec3{1, 1, 1}) {
		t.Fatalf("expected kinematic body untouched by Step, got %v", pos)
	}
}

func TestWorld_ApplyImpulseChangesVelocityByImpulseOverMass(t *testing.T) {
	w := NewWorld(mgl32.Vec3{})
	ball := w.AddDynamicSphere(mgl32.Vec3{}, 0.8, 2, 0.8, 0, 0, true)

	w.ApplyImpulse(ball, mgl32.Vec3{4, 0, 0})
	if got, want := w.LinearVelocity(ball), (mgl32.Vec3{2, 0, 0}); got != want {
		t.Fatalf("expected velocity = impulse/mass = %v, got %v", want, got)
	}
}

func TestWorld_ApplyImpulseIgnoresKinematicBodies(t *testing.T) {
	w := NewWorld(mgl32.Vec3{})
	player := w.AddKinematicSphere(mgl32.Vec3{}, 0.4)

	w.ApplyImpulse(player, mgl32.Vec3{10, 0, 0})
	if vel := w.LinearVelocity(player); vel != (mgl32.Vec3{}) {
		t.Fatalf("expected kinematic bodies to ignore impulses, got %v", vel)
	}
}

func TestWorld_SetColliderRadiusOnlyAffectsSphereColliders(t *testing.T) {
	w := NewWorld(mgl32.Vec3{})
	player := w.AddKinematicSphere(mgl32.Vec3{}, 0.4)

	w.SetColliderRadius(player, 2.0)
	if got := w.Collider(player).Radius; got != 2.0 {
		t.Fatalf("expected radius updated to 2.0, got %v", got)
	}
}

func TestWorld_RemoveBodyIsSafeOnUnknownHandle(t *testing.T) {
	w := NewWorld(mgl32.Vec3{})
	w.RemoveBody(BodyHandle(999))
}

func TestWorld_LinearDampingReducesVelocityOverTime(t *testing.T) {
	w := NewWorld(mgl32.Vec3{})
	ball := w.AddDynamicSphere(mgl32.Vec3{}, 0.8, 1, 0.8, 5, 0, true)
	w.SetLinearVelocity(ball, mgl32.Vec3{10, 0, 0})

	w.Step(1.0 / 60)
	if vel := w.LinearVelocity(ball); vel.X() >= 10 {
		t.Fatalf("expected linear damping to reduce velocity below initial 10, got %v", vel.X())
	}
}
