// Package simenv describes the contract between the state space and a live rigid-body
// simulation. The simulation itself (integration, collision detection, rendering) lives
// behind the Environment interface and is owned by the caller.
package simenv

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// BodyState is the full planning-relevant snapshot of a single rigid body.
type BodyState struct {
	Position        r3.Vector
	LinearVelocity  r3.Vector
	AngularVelocity r3.Vector
	Orientation     quat.Number
}

// Environment is the descriptor for a simulated world holding the rigid bodies under
// planning control. It is a shared mutable resource referenced, never owned, by every
// state space built on top of it.
//
// ReadBody is safe to call from multiple goroutines only if the implementation's read
// path is side-effect free. WriteBody is not safe to call concurrently against the same
// environment: there is no atomicity across bodies and no locking performed by callers
// of this interface, so all writers to a given environment must be serialized (one
// planning goroutine owns write access at a time) or accept nondeterministic results.
type Environment interface {
	// RigidBodies returns the count of bodies under planning control. Bodies are
	// addressed by index in [0, RigidBodies()).
	RigidBodies() int

	// VolumeBounds returns an axis-aligned box enclosing all collision geometry in the
	// environment, used as the default position bound for every body.
	VolumeBounds() (min, max r3.Vector)

	// ReadBody returns the current state of the given body.
	ReadBody(body int) BodyState

	// WriteBody teleports the given body to the given state.
	WriteBody(body int, bs BodyState)
}
