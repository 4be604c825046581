package fake

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"github.com/viam-labs/simstate/simenv"
)

func TestEnvironment(t *testing.T) {
	env := NewEnvironment(2, r3.Vector{X: -1, Y: -1, Z: -1}, r3.Vector{X: 1, Y: 1, Z: 1}, golog.NewTestLogger(t))
	test.That(t, env.RigidBodies(), test.ShouldEqual, 2)

	min, max := env.VolumeBounds()
	test.That(t, min, test.ShouldResemble, r3.Vector{X: -1, Y: -1, Z: -1})
	test.That(t, max, test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 1})

	// bodies start at rest with identity orientations
	test.That(t, env.ReadBody(0), test.ShouldResemble, simenv.BodyState{Orientation: quat.Number{Real: 1}})

	bs := simenv.BodyState{
		Position:       r3.Vector{X: 0.5},
		LinearVelocity: r3.Vector{Y: 2},
		Orientation:    quat.Number{Real: 1},
	}
	env.WriteBody(1, bs)
	test.That(t, env.ReadBody(1), test.ShouldResemble, bs)
	test.That(t, env.ReadBody(0).Position, test.ShouldResemble, r3.Vector{})
}

func TestStep(t *testing.T) {
	env := NewEnvironment(1, r3.Vector{X: -10, Y: -10, Z: -10}, r3.Vector{X: 10, Y: 10, Z: 10}, golog.NewTestLogger(t))
	env.WriteBody(0, simenv.BodyState{
		LinearVelocity:  r3.Vector{X: 1, Z: -2},
		AngularVelocity: r3.Vector{Z: 0.5},
		Orientation:     quat.Number{Real: 1},
	})

	env.Step(0.5)
	bs := env.ReadBody(0)
	test.That(t, bs.Position, test.ShouldResemble, r3.Vector{X: 0.5, Z: -1})

	// the integrated orientation rotated about z and drifted slightly off unit norm
	test.That(t, bs.Orientation.Kmag, test.ShouldNotEqual, 0)
	norm := quat.Abs(bs.Orientation)
	test.That(t, norm, test.ShouldNotEqual, 1)
	test.That(t, norm, test.ShouldAlmostEqual, 1, 0.05)
}
