package statespace

import (
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestStateLayout(t *testing.T) {
	const nBodies = 3
	st := newState(nBodies)
	test.That(t, st.NumBodies(), test.ShouldEqual, nBodies)
	test.That(t, len(st.values), test.ShouldEqual, nBodies*bodyStride)
	test.That(t, st.ValidCollision, test.ShouldBeTrue)

	// Write a distinct sentinel through every accessor slot.
	for b := 0; b < nBodies; b++ {
		base := float64(b * 100)
		for i, v := range st.Position(b) {
			test.That(t, v, test.ShouldEqual, 0)
			st.Position(b)[i] = base + float64(i)
		}
		for i := range st.LinearVelocity(b) {
			st.LinearVelocity(b)[i] = base + 10 + float64(i)
		}
		for i := range st.AngularVelocity(b) {
			st.AngularVelocity(b)[i] = base + 20 + float64(i)
		}
		for i := range st.Orientation(b) {
			st.Orientation(b)[i] = base + 30 + float64(i)
		}
	}

	// Each body's block starts at its stride offset with the four sub-states in fixed
	// order, and no accessor aliases another body's block.
	for b := 0; b < nBodies; b++ {
		base := float64(b * 100)
		for i := 0; i < 3; i++ {
			test.That(t, st.values[b*bodyStride+positionOffset+i], test.ShouldEqual, base+float64(i))
			test.That(t, st.values[b*bodyStride+linearVelocityOffset+i], test.ShouldEqual, base+10+float64(i))
			test.That(t, st.values[b*bodyStride+angularVelocityOffset+i], test.ShouldEqual, base+20+float64(i))
		}
		for i := 0; i < 4; i++ {
			test.That(t, st.values[b*bodyStride+orientationOffset+i], test.ShouldEqual, base+30+float64(i))
		}
	}
}

func TestStateAccessorsShareBacking(t *testing.T) {
	st := newState(2)

	// Mutations through one view are visible through a fresh view, no copying.
	st.Position(1)[2] = 7.5
	test.That(t, st.Position(1)[2], test.ShouldEqual, 7.5)
	test.That(t, st.Position(0)[2], test.ShouldEqual, 0)

	st.SetQuaternion(0, quat.Number{Real: 0.5, Imag: 0.5, Jmag: 0.5, Kmag: 0.5})
	o := st.Orientation(0)
	test.That(t, o[0], test.ShouldEqual, 0.5)
	o[1] = -0.5
	test.That(t, st.Quaternion(0), test.ShouldResemble, quat.Number{Real: 0.5, Imag: -0.5, Jmag: 0.5, Kmag: 0.5})

	// Appending to a view must not bleed into the neighboring sub-state.
	grown := append(st.Position(0), 99) //nolint:gocritic
	test.That(t, grown[3], test.ShouldEqual, 99)
	test.That(t, st.LinearVelocity(0)[0], test.ShouldEqual, 0)
}
