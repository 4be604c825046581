// Package statespace implements the composite state space a sampling-based motion
// planner uses to plan over the rigid bodies of a live simulation. Each body
// contributes four sub-states (position, linear velocity, angular velocity,
// orientation); the space owns allocation, interpolation, bounds checking, sampling
// and the two-way synchronization of states with the simulated environment.
package statespace

import (
	"math"
	"sync"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/viam-labs/simstate/simenv"
	"github.com/viam-labs/simstate/spatialmath"
	"github.com/viam-labs/simstate/utils"
)

const defaultVelocityExtent = 1.0

// almostEqualTol is the floating tolerance used when comparing state values.
const almostEqualTol = 1e-8

// Space is the composite state space over all rigid bodies of one environment. It
// references the environment, it does not own it; the environment outlives the space
// and may be shared by several spaces.
type Space struct {
	env     simenv.Environment
	nBodies int
	weights Weights
	logger  golog.Logger

	volume Bounds
	linVel Bounds
	angVel Bounds

	pool sync.Pool
}

// NewSpace constructs a state space over the bodies of the given environment and applies
// the default bounds. The weights are used by the composite distance metric; pass
// DefaultWeights() unless the planner needs a different balance.
func NewSpace(env simenv.Environment, weights Weights, logger golog.Logger) (*Space, error) {
	if env == nil {
		return nil, errors.New("state space needs an environment to plan over")
	}
	nBodies := env.RigidBodies()
	if nBodies <= 0 {
		return nil, errors.Errorf("environment has %d rigid bodies under planning control, need at least 1", nBodies)
	}
	if err := weights.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid distance weights")
	}
	ss := &Space{
		env:     env,
		nBodies: nBodies,
		weights: weights,
		logger:  logger,
	}
	ss.pool.New = func() interface{} {
		return newState(ss.nBodies)
	}
	ss.SetDefaultBounds()
	return ss, nil
}

// Environment returns the simulated environment this state space corresponds to.
func (ss *Space) Environment() simenv.Environment {
	return ss.env
}

// NumBodies returns the number of bodies state is maintained for.
func (ss *Space) NumBodies() int {
	return ss.nBodies
}

// Weights returns the distance metric weights.
func (ss *Space) Weights() Weights {
	return ss.weights
}

// Dimension returns the manifold dimension of the space: each body contributes three
// position, three linear velocity and three angular velocity dimensions plus the three
// rotational degrees of freedom of its orientation.
func (ss *Space) Dimension() int {
	return ss.nBodies * 12
}

// SetDefaultBounds computes a volume bound enclosing all collision geometry in the
// environment and applies it to every body's position sub-space; linear and angular
// velocities are bounded to [-1, 1] on each axis.
func (ss *Space) SetDefaultBounds() {
	min, max := ss.env.VolumeBounds()
	ss.volume = Bounds{Min: min, Max: max}
	ss.linVel = NewSymmetricBounds(defaultVelocityExtent)
	ss.angVel = NewSymmetricBounds(defaultVelocityExtent)
	if ss.logger != nil {
		ss.logger.Debugw("applied default bounds", "volume", ss.volume.String(), "bodies", ss.nBodies)
	}
}

// SetVolumeBounds applies the given box uniformly to every body's position sub-space.
func (ss *Space) SetVolumeBounds(b Bounds) error {
	if err := b.Validate(); err != nil {
		return errors.Wrap(err, "invalid volume bounds")
	}
	ss.volume = b
	return nil
}

// SetLinearVelocityBounds applies the given box uniformly to every body's linear
// velocity sub-space.
func (ss *Space) SetLinearVelocityBounds(b Bounds) error {
	if err := b.Validate(); err != nil {
		return errors.Wrap(err, "invalid linear velocity bounds")
	}
	ss.linVel = b
	return nil
}

// SetAngularVelocityBounds applies the given box uniformly to every body's angular
// velocity sub-space.
func (ss *Space) SetAngularVelocityBounds(b Bounds) error {
	if err := b.Validate(); err != nil {
		return errors.Wrap(err, "invalid angular velocity bounds")
	}
	ss.angVel = b
	return nil
}

// VolumeBounds returns the position bounds shared by every body.
func (ss *Space) VolumeBounds() Bounds {
	return ss.volume
}

// LinearVelocityBounds returns the linear velocity bounds shared by every body.
func (ss *Space) LinearVelocityBounds() Bounds {
	return ss.linVel
}

// AngularVelocityBounds returns the angular velocity bounds shared by every body.
func (ss *Space) AngularVelocityBounds() Bounds {
	return ss.angVel
}

// AllocState produces a zeroed state shaped for this space, with identity orientations
// and ValidCollision set. States are recycled through FreeState; a state must only ever
// be freed back to the space that allocated it.
func (ss *Space) AllocState() *State {
	st := ss.pool.Get().(*State)
	for i := range st.values {
		st.values[i] = 0
	}
	for b := 0; b < ss.nBodies; b++ {
		st.Orientation(b)[0] = 1
	}
	st.ValidCollision = true
	return st
}

// FreeState releases a state previously produced by AllocState. Freeing a state twice,
// or freeing a state allocated by a different space, is a caller error.
func (ss *Space) FreeState(st *State) {
	ss.pool.Put(st)
}

// CopyState deep-copies all sub-state values and the ValidCollision flag from src into
// dst. dst must already be allocated with matching shape.
func (ss *Space) CopyState(dst, src *State) {
	copy(dst.values, src.values)
	dst.ValidCollision = src.ValidCollision
}

// StatesAlmostEqual reports whether two states agree on every sub-state within floating
// tolerance and carry the same ValidCollision flag. Orientations are compared as
// orientations: a quaternion and its negation represent the same rotation and count as
// equal.
func (ss *Space) StatesAlmostEqual(a, b *State) bool {
	if a.ValidCollision != b.ValidCollision {
		return false
	}
	for body := 0; body < ss.nBodies; body++ {
		if !slicesAlmostEqual(a.Position(body), b.Position(body)) ||
			!slicesAlmostEqual(a.LinearVelocity(body), b.LinearVelocity(body)) ||
			!slicesAlmostEqual(a.AngularVelocity(body), b.AngularVelocity(body)) {
			return false
		}
		if !spatialmath.QuaternionAlmostEqual(a.Quaternion(body), b.Quaternion(body), almostEqualTol) {
			return false
		}
	}
	return true
}

func slicesAlmostEqual(a, b []float64) bool {
	for i := range a {
		if !utils.Float64AlmostEqual(a[i], b[i], almostEqualTol) {
			return false
		}
	}
	return true
}

// Interpolate computes the state a fraction t in [0, 1] of the way from one state to
// another: positions and velocities interpolate linearly, orientations along the
// shortest arc of the rotation manifold. The result's ValidCollision flag is cleared
// since an interpolated state has not been validated against the simulation.
func (ss *Space) Interpolate(from, to *State, t float64, result *State) {
	for b := 0; b < ss.nBodies; b++ {
		lerp(from.Position(b), to.Position(b), t, result.Position(b))
		lerp(from.LinearVelocity(b), to.LinearVelocity(b), t, result.LinearVelocity(b))
		lerp(from.AngularVelocity(b), to.AngularVelocity(b), t, result.AngularVelocity(b))
		result.SetQuaternion(b, spatialmath.Slerp(from.Quaternion(b), to.Quaternion(b), t))
	}
	result.ValidCollision = false
}

// Distance returns the weighted composite distance between two states: per body, the
// Euclidean distances of the three vector sub-spaces plus the arc length between the
// orientations, each scaled by its sub-space weight and summed.
func (ss *Space) Distance(a, b *State) float64 {
	var sum float64
	for body := 0; body < ss.nBodies; body++ {
		sum += ss.weights.Position * euclideanDistance(a.Position(body), b.Position(body))
		sum += ss.weights.LinearVelocity * euclideanDistance(a.LinearVelocity(body), b.LinearVelocity(body))
		sum += ss.weights.AngularVelocity * euclideanDistance(a.AngularVelocity(body), b.AngularVelocity(body))
		sum += ss.weights.Orientation * spatialmath.AngularDistance(a.Quaternion(body), b.Quaternion(body))
	}
	return sum
}

// SatisfiesBoundsExceptRotation reports whether every body's position, linear velocity
// and angular velocity lie within the configured bounds, ignoring orientation entirely.
// Orientations coming out of a simulation step drift microscopically off the unit
// manifold, and re-validating them on every probe is wasted cost, so this is the cheap
// partial check for hot paths.
func (ss *Space) SatisfiesBoundsExceptRotation(st *State) bool {
	for b := 0; b < ss.nBodies; b++ {
		if !ss.volume.Contains(st.Position(b)) ||
			!ss.linVel.Contains(st.LinearVelocity(b)) ||
			!ss.angVel.Contains(st.AngularVelocity(b)) {
			return false
		}
	}
	return true
}

// Valid reports whether a state can be considered valid without consulting the
// simulation: its cached collision flag is set and all non-rotation sub-spaces are
// within bounds.
func (ss *Space) Valid(st *State) bool {
	return st.ValidCollision && ss.SatisfiesBoundsExceptRotation(st)
}

// ProjectPositions writes the 3N position-only projection of the state, used by
// projection-based planners to estimate coverage. The returned slice is freshly
// allocated.
func (ss *Space) ProjectPositions(st *State) []float64 {
	projection := make([]float64, 0, ss.nBodies*3)
	for b := 0; b < ss.nBodies; b++ {
		projection = append(projection, st.Position(b)...)
	}
	return projection
}

// ReadState pulls every body's current position, orientation and velocities out of the
// live environment into the given state. This is the only path by which planning state
// comes to reflect actual simulated physics.
func (ss *Space) ReadState(st *State) {
	for b := 0; b < ss.nBodies; b++ {
		bs := ss.env.ReadBody(b)
		setVec(st.Position(b), bs.Position)
		setVec(st.LinearVelocity(b), bs.LinearVelocity)
		setVec(st.AngularVelocity(b), bs.AngularVelocity)
		st.SetQuaternion(b, bs.Orientation)
	}
}

// WriteState pushes the given state into the live environment, teleporting every body to
// the state's configuration. The environment is a single shared mutable resource with no
// atomicity across bodies: concurrent WriteState calls against the same environment
// interleave unpredictably, so callers must serialize writers (see simenv.Environment).
func (ss *Space) WriteState(st *State) {
	for b := 0; b < ss.nBodies; b++ {
		ss.env.WriteBody(b, simenv.BodyState{
			Position:        vecOf(st.Position(b)),
			LinearVelocity:  vecOf(st.LinearVelocity(b)),
			AngularVelocity: vecOf(st.AngularVelocity(b)),
			Orientation:     st.Quaternion(b),
		})
	}
}

func lerp(from, to []float64, t float64, out []float64) {
	for i := range out {
		out[i] = from[i] + t*(to[i]-from[i])
	}
}

func euclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += utils.Square(a[i] - b[i])
	}
	return math.Sqrt(sum)
}
