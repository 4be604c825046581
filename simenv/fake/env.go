// Package fake implements an in-memory simenv.Environment for tests and examples.
package fake

import (
	"sync"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/viam-labs/simstate/simenv"
)

// Environment is a fake simulated world holding a fixed table of rigid bodies. Unlike a
// real simulation it serializes all access internally, so it is safe to use from tests
// that exercise the state space from multiple goroutines.
type Environment struct {
	mu       sync.Mutex
	bodies   []simenv.BodyState
	min, max r3.Vector
	logger   golog.Logger
}

// NewEnvironment returns a fake environment with n bodies at rest at the origin, with
// identity orientations, and the given collision volume extents.
func NewEnvironment(n int, min, max r3.Vector, logger golog.Logger) *Environment {
	bodies := make([]simenv.BodyState, n)
	for i := range bodies {
		bodies[i].Orientation = quat.Number{Real: 1}
	}
	return &Environment{bodies: bodies, min: min, max: max, logger: logger}
}

// RigidBodies returns the number of bodies in the fake world.
func (e *Environment) RigidBodies() int {
	return len(e.bodies)
}

// VolumeBounds returns the extents the environment was constructed with.
func (e *Environment) VolumeBounds() (r3.Vector, r3.Vector) {
	return e.min, e.max
}

// ReadBody returns the current state of the given body.
func (e *Environment) ReadBody(body int) simenv.BodyState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bodies[body]
}

// WriteBody teleports the given body to the given state.
func (e *Environment) WriteBody(body int, bs simenv.BodyState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bodies[body] = bs
}

// Step advances every body kinematically by dt seconds: positions follow linear
// velocities and orientations follow angular velocities. Orientations are integrated
// with the first-order quaternion derivative and deliberately not renormalized, which
// reproduces the microscopic unit-norm drift a real simulation step exhibits.
func (e *Environment) Step(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.bodies {
		b := &e.bodies[i]
		b.Position = b.Position.Add(b.LinearVelocity.Mul(dt))

		w := quat.Number{Imag: b.AngularVelocity.X, Jmag: b.AngularVelocity.Y, Kmag: b.AngularVelocity.Z}
		dq := quat.Scale(0.5*dt, quat.Mul(w, b.Orientation))
		b.Orientation = quat.Add(b.Orientation, dq)
	}
	if e.logger != nil {
		e.logger.Debugw("stepped fake environment", "dt", dt, "bodies", len(e.bodies))
	}
}
