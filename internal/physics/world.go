// Package physics implements the minimal rigid-body capability the sim loop
// depends on: static colliders, a single dynamic CCD body (the ball), and
// kinematic bodies (players). It plays the role of the spec's external
// "PhysicsWorld" — a narrow adapter, not a general physics engine.
package physics

import "github.com/go-gl/mathgl/mgl32"

// BodyHandle identifies a body registered with a World. The zero value
// never refers to a live body.
type BodyHandle uint32

// BodyKind distinguishes how a body's pose is driven.
type BodyKind int

const (
	// KindStatic bodies never move; they only participate as colliders.
	KindStatic BodyKind = iota
	// KindKinematic bodies have their pose set directly by game logic.
	KindKinematic
	// KindDynamic bodies are integrated by the world under velocity/impulses.
	KindDynamic
)

// ColliderShape tags the geometric primitive attached to a body.
type ColliderShape int

const (
	ShapeCuboid ColliderShape = iota
	ShapeCylinder
	ShapeSphere
)

// Collider describes static or attached collision geometry.
type Collider struct {
	Shape       ColliderShape
	HalfExtents mgl32.Vec3 // cuboid: half-width/height/depth
	Radius      float32    // cylinder / sphere
	Height      float32    // cylinder
	Friction    float32
	Restitution float32
}

type body struct {
	kind      BodyKind
	collider  Collider
	translation mgl32.Vec3
	rotation    mgl32.Quat
	linVel      mgl32.Vec3
	angVel      mgl32.Vec3
	ccd         bool
	linearDamping  float32
	angularDamping float32
	mass           float32
}

// World is a minimal rigid-body world: static colliders, one CCD dynamic
// body, and any number of kinematic bodies. Not safe for concurrent use —
// callers (the Match's sim goroutine) own exclusive access.
type World struct {
	gravity mgl32.Vec3
	bodies  map[BodyHandle]*body
	nextID  BodyHandle
}

// NewWorld creates an empty world with the given gravity vector.
func NewWorld(gravity mgl32.Vec3) *World {
	return &World{
		gravity: gravity,
		bodies:  make(map[BodyHandle]*body),
	}
}

func (w *World) insert(b *body) BodyHandle {
	w.nextID++
	h := w.nextID
	w.bodies[h] = b
	return h
}

// AddStaticCuboid registers an immovable box collider at the given pose.
func (w *World) AddStaticCuboid(translation mgl32.Vec3, rotation mgl32.Quat, halfExtents mgl32.Vec3, friction, restitution float32) BodyHandle {
	return w.insert(&body{
		kind:        KindStatic,
		translation: translation,
		rotation:    rotation,
		collider: Collider{
			Shape:       ShapeCuboid,
			HalfExtents: halfExtents,
			Friction:    friction,
			Restitution: restitution,
		},
	})
}

// AddStaticCylinder registers an immovable cylinder collider (goal posts,
// crossbars — crossbars pass a rotated quaternion).
func (w *World) AddStaticCylinder(translation mgl32.Vec3, rotation mgl32.Quat, radius, height, friction, restitution float32) BodyHandle {
	return w.insert(&body{
		kind:        KindStatic,
		translation: translation,
		rotation:    rotation,
		collider: Collider{
			Shape:       ShapeCylinder,
			Radius:      radius,
			Height:      height,
			Friction:    friction,
			Restitution: restitution,
		},
	})
}

// AddStaticSphere registers an immovable sphere collider.
func (w *World) AddStaticSphere(translation mgl32.Vec3, radius, friction, restitution float32) BodyHandle {
	return w.insert(&body{
		kind:        KindStatic,
		translation: translation,
		rotation:    mgl32.QuatIdent(),
		collider: Collider{
			Shape:       ShapeSphere,
			Radius:      radius,
			Friction:    friction,
			Restitution: restitution,
		},
	})
}

// AddDynamicSphere registers the single dynamic, CCD-eligible body (the
// ball). mass/linearDamping/angularDamping drive integration in Step.
func (w *World) AddDynamicSphere(translation mgl32.Vec3, radius, mass, restitution, linearDamping, angularDamping float32, ccd bool) BodyHandle {
	return w.insert(&body{
		kind:        KindDynamic,
		translation: translation,
		rotation:    mgl32.QuatIdent(),
		mass:        mass,
		ccd:         ccd,
		linearDamping:  linearDamping,
		angularDamping: angularDamping,
		collider: Collider{
			Shape:       ShapeSphere,
			Radius:      radius,
			Restitution: restitution,
		},
	})
}

// AddKinematicSphere registers a kinematic body (a player's collider).
func (w *World) AddKinematicSphere(translation mgl32.Vec3, radius float32) BodyHandle {
	return w.insert(&body{
		kind:        KindKinematic,
		translation: translation,
		rotation:    mgl32.QuatIdent(),
		collider: Collider{
			Shape:  ShapeSphere,
			Radius: radius,
		},
	})
}

// RemoveBody releases a body's handle. Safe to call with an unknown handle.
func (w *World) RemoveBody(h BodyHandle) {
	delete(w.bodies, h)
}

// SetColliderRadius swaps a kinematic body's sphere radius (used by the
// giant power-up). No-op for unknown handles or non-sphere colliders.
func (w *World) SetColliderRadius(h BodyHandle, radius float32) {
	if b, ok := w.bodies[h]; ok && b.collider.Shape == ShapeSphere {
		b.collider.Radius = radius
	}
}

// SetTranslation directly sets a body's pose (kinematic commit, or dynamic
// body teleport for safety interventions like the giant-powerup ball push).
func (w *World) SetTranslation(h BodyHandle, t mgl32.Vec3) {
	if b, ok := w.bodies[h]; ok {
		b.translation = t
	}
}

// Translation returns a body's current position.
func (w *World) Translation(h BodyHandle) mgl32.Vec3 {
	if b, ok := w.bodies[h]; ok {
		return b.translation
	}
	return mgl32.Vec3{}
}

// SetRotation sets a body's orientation quaternion.
func (w *World) SetRotation(h BodyHandle, q mgl32.Quat) {
	if b, ok := w.bodies[h]; ok {
		b.rotation = q
	}
}

// Rotation returns a body's current orientation.
func (w *World) Rotation(h BodyHandle) mgl32.Quat {
	if b, ok := w.bodies[h]; ok {
		return b.rotation
	}
	return mgl32.QuatIdent()
}

// SetLinearVelocity sets a dynamic body's linear velocity directly (used by
// the contact resolver and boundary enforcer to apply reflections).
func (w *World) SetLinearVelocity(h BodyHandle, v mgl32.Vec3) {
	if b, ok := w.bodies[h]; ok {
		b.linVel = v
	}
}

// LinearVelocity returns a dynamic body's linear velocity.
func (w *World) LinearVelocity(h BodyHandle) mgl32.Vec3 {
	if b, ok := w.bodies[h]; ok {
		return b.linVel
	}
	return mgl32.Vec3{}
}

// SetAngularVelocity sets a dynamic body's angular velocity (rad/s per axis).
func (w *World) SetAngularVelocity(h BodyHandle, v mgl32.Vec3) {
	if b, ok := w.bodies[h]; ok {
		b.angVel = v
	}
}

// AngularVelocity returns a dynamic body's angular velocity.
func (w *World) AngularVelocity(h BodyHandle) mgl32.Vec3 {
	if b, ok := w.bodies[h]; ok {
		return b.angVel
	}
	return mgl32.Vec3{}
}

// ApplyImpulse adds an instantaneous linear impulse (impulse/mass = Δv) to a
// dynamic body.
func (w *World) ApplyImpulse(h BodyHandle, impulse mgl32.Vec3) {
	b, ok := w.bodies[h]
	if !ok || b.kind != KindDynamic || b.mass <= 0 {
		return
	}
	b.linVel = b.linVel.Add(impulse.Mul(1.0 / b.mass))
}

// Collider returns the collider geometry attached to a body.
func (w *World) Collider(h BodyHandle) Collider {
	if b, ok := w.bodies[h]; ok {
		return b.collider
	}
	return Collider{}
}

// Step advances the dynamic body (the ball) by dt: integrates gravity,
// linear/angular damping, translation and rotation from angular velocity,
// and clamps nothing — boundary/arena enforcement happens above this layer.
// Kinematic and static bodies are untouched; their poses are set directly by
// the caller (players are kinematic, per spec §9's deliberate split).
func (w *World) Step(dt float32) {
	for _, b := range w.bodies {
		if b.kind != KindDynamic {
			continue
		}
		b.linVel = b.linVel.Add(w.gravity.Mul(dt))
		b.linVel = b.linVel.Mul(1.0 / (1.0 + b.linearDamping*dt))
		b.angVel = b.angVel.Mul(1.0 / (1.0 + b.angularDamping*dt))

		b.translation = b.translation.Add(b.linVel.Mul(dt))

		if angSpeed := b.angVel.Len(); angSpeed > 1e-6 {
			angDelta := mgl32.QuatRotate(angSpeed*dt, b.angVel.Normalize())
			b.rotation = angDelta.Mul(b.rotation).Normalize()
		}
	}
}
