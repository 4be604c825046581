package statespace

import (
	"math/rand"

	"github.com/viam-labs/simstate/spatialmath"
)

// StateSampler draws states uniformly at random from a Space, respecting its configured
// bounds. Each body's sub-spaces are sampled independently of every other body's.
type StateSampler struct {
	space *Space
	rnd   *rand.Rand
}

// DefaultStateSampler returns the space's standard uniform sampler. A nil source falls
// back to a fixed seed, so tests get deterministic sequences without wiring one up.
func (ss *Space) DefaultStateSampler(rnd *rand.Rand) *StateSampler {
	if rnd == nil {
		//nolint:gosec
		rnd = rand.New(rand.NewSource(1))
	}
	return &StateSampler{space: ss, rnd: rnd}
}

// StateSampler returns a sampler for this space. It behaves identically to
// DefaultStateSampler; the planning framework distinguishes a default sampler from an
// explicitly requested one, and this space has a single sampling strategy.
func (ss *Space) StateSampler(rnd *rand.Rand) *StateSampler {
	return ss.DefaultStateSampler(rnd)
}

// SampleUniform fills the given state with a uniform draw: positions and velocities
// uniform within their box bounds, orientations uniform over the rotation manifold.
func (s *StateSampler) SampleUniform(st *State) {
	for b := 0; b < s.space.nBodies; b++ {
		s.sampleBox(st.Position(b), s.space.volume)
		s.sampleBox(st.LinearVelocity(b), s.space.linVel)
		s.sampleBox(st.AngularVelocity(b), s.space.angVel)
		st.SetQuaternion(b, spatialmath.RandomQuaternion(s.rnd))
	}
	st.ValidCollision = false
}

func (s *StateSampler) sampleBox(out []float64, b Bounds) {
	out[0] = b.Min.X + s.rnd.Float64()*(b.Max.X-b.Min.X)
	out[1] = b.Min.Y + s.rnd.Float64()*(b.Max.Y-b.Min.Y)
	out[2] = b.Min.Z + s.rnd.Float64()*(b.Max.Z-b.Min.Z)
}
