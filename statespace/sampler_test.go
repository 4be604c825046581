package statespace

import (
	"math/rand"
	"testing"

	"go.viam.com/test"

	"github.com/viam-labs/simstate/spatialmath"
)

func TestSampleUniformRespectsBounds(t *testing.T) {
	ss := testSpace(t, 2)
	test.That(t, ss.SetVolumeBounds(NewSymmetricBounds(2)), test.ShouldBeNil)
	test.That(t, ss.SetLinearVelocityBounds(NewSymmetricBounds(0.5)), test.ShouldBeNil)

	sampler := ss.DefaultStateSampler(rand.New(rand.NewSource(11)))
	st := ss.AllocState()
	defer ss.FreeState(st)

	for i := 0; i < 1000; i++ {
		sampler.SampleUniform(st)
		test.That(t, st.ValidCollision, test.ShouldBeFalse)
		for b := 0; b < ss.NumBodies(); b++ {
			test.That(t, ss.VolumeBounds().Contains(st.Position(b)), test.ShouldBeTrue)
			test.That(t, ss.LinearVelocityBounds().Contains(st.LinearVelocity(b)), test.ShouldBeTrue)
			test.That(t, ss.AngularVelocityBounds().Contains(st.AngularVelocity(b)), test.ShouldBeTrue)
			test.That(t, spatialmath.Norm(st.Quaternion(b)), test.ShouldAlmostEqual, 1, 1e-10)
		}
		// every sample is in bounds, so the partial check agrees
		test.That(t, ss.SatisfiesBoundsExceptRotation(st), test.ShouldBeTrue)
	}
}

func TestSamplerDeterminism(t *testing.T) {
	ss := testSpace(t, 1)

	a := ss.AllocState()
	b := ss.AllocState()
	defer ss.FreeState(a)
	defer ss.FreeState(b)

	ss.DefaultStateSampler(rand.New(rand.NewSource(23))).SampleUniform(a)
	ss.DefaultStateSampler(rand.New(rand.NewSource(23))).SampleUniform(b)
	test.That(t, ss.StatesAlmostEqual(a, b), test.ShouldBeTrue)

	// the explicit factory is the default strategy under another name
	ss.StateSampler(rand.New(rand.NewSource(23))).SampleUniform(b)
	test.That(t, ss.StatesAlmostEqual(a, b), test.ShouldBeTrue)

	// nil sources fall back to a fixed seed
	ss.DefaultStateSampler(nil).SampleUniform(a)
	ss.StateSampler(nil).SampleUniform(b)
	test.That(t, ss.StatesAlmostEqual(a, b), test.ShouldBeTrue)
}

func TestSamplerCoversBounds(t *testing.T) {
	ss := testSpace(t, 1)
	test.That(t, ss.SetVolumeBounds(NewSymmetricBounds(1)), test.ShouldBeNil)

	sampler := ss.DefaultStateSampler(rand.New(rand.NewSource(99)))
	st := ss.AllocState()
	defer ss.FreeState(st)

	var sawLow, sawHigh bool
	for i := 0; i < 2000; i++ {
		sampler.SampleUniform(st)
		x := st.Position(0)[0]
		if x < -0.9 {
			sawLow = true
		}
		if x > 0.9 {
			sawHigh = true
		}
	}
	test.That(t, sawLow, test.ShouldBeTrue)
	test.That(t, sawHigh, test.ShouldBeTrue)
}
