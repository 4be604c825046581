package statespace

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Sub-state slot offsets within a body block. Each body owns a fixed block of
// bodyStride contiguous values in the backing arena: three position values, three
// linear velocity values, three angular velocity values, and a four-value unit
// quaternion stored w, x, y, z.
const (
	positionOffset        = 0
	linearVelocityOffset  = 3
	angularVelocityOffset = 6
	orientationOffset     = 9
	bodyStride            = 13
)

// State is the full planning-relevant snapshot of all rigid bodies in an environment.
// Its shape is defined by the Space that allocated it, not self-describing: a State must
// only ever be used with the Space it came from. All sub-state values live in one
// contiguous arena so accessors hand out zero-copy views.
type State struct {
	values []float64

	// ValidCollision records whether this state's collision validity is already known
	// and cached, letting the planner skip redundant collision checks. It is not part
	// of the geometric content of the state.
	ValidCollision bool
}

func newState(nBodies int) *State {
	return &State{
		values:         make([]float64, nBodies*bodyStride),
		ValidCollision: true,
	}
}

// NumBodies returns the number of rigid bodies this state holds sub-states for.
func (s *State) NumBodies() int {
	return len(s.values) / bodyStride
}

// Position returns a mutable view of the given body's position values (x, y, z).
// The body index is not checked against the body count; these accessors sit on
// simulation hot paths and an out-of-range index is a caller error.
func (s *State) Position(body int) []float64 {
	base := body*bodyStride + positionOffset
	return s.values[base : base+3 : base+3]
}

// LinearVelocity returns a mutable view of the given body's linear velocity values
// (x, y, z). The body index is not checked.
func (s *State) LinearVelocity(body int) []float64 {
	base := body*bodyStride + linearVelocityOffset
	return s.values[base : base+3 : base+3]
}

// AngularVelocity returns a mutable view of the given body's angular velocity values
// (x, y, z). The body index is not checked.
func (s *State) AngularVelocity(body int) []float64 {
	base := body*bodyStride + angularVelocityOffset
	return s.values[base : base+3 : base+3]
}

// Orientation returns a mutable view of the given body's orientation quaternion values
// (w, x, y, z). The body index is not checked.
func (s *State) Orientation(body int) []float64 {
	base := body*bodyStride + orientationOffset
	return s.values[base : base+4 : base+4]
}

// Quaternion returns the given body's orientation as a quaternion.
func (s *State) Quaternion(body int) quat.Number {
	o := s.Orientation(body)
	return quat.Number{Real: o[0], Imag: o[1], Jmag: o[2], Kmag: o[3]}
}

// SetQuaternion sets the given body's orientation from a quaternion.
func (s *State) SetQuaternion(body int, q quat.Number) {
	o := s.Orientation(body)
	o[0], o[1], o[2], o[3] = q.Real, q.Imag, q.Jmag, q.Kmag
}

func vecOf(v []float64) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

func setVec(dst []float64, v r3.Vector) {
	dst[0], dst[1], dst[2] = v.X, v.Y, v.Z
}
