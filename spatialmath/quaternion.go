// Package spatialmath defines the spatial mathematical operations needed to represent
// and interpolate rigid body orientations.
package spatialmath

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"

	"github.com/viam-labs/simstate/utils"
)

// Norm returns the norm of the quaternion, i.e. the sqrt of the sum of the squares of all parts.
func Norm(q quat.Number) float64 {
	return quat.Abs(q)
}

// Normalize a quaternion, returning its, versor (unit quaternion).
func Normalize(q quat.Number) quat.Number {
	length := quat.Abs(q)
	if math.Abs(length-1.0) < 1e-10 {
		return q
	}
	if length == 0 {
		return quat.Number{Real: 1}
	}
	if length == math.Inf(1) {
		length = float64(math.MaxFloat64)
	}
	return quat.Scale(1/length, q)
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation
// but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// QuaternionAlmostEqual is an equality test for all the float components of a quaternion. Quaternions
// have double coverage, q and -q represent the same orientation, and this checks both.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return quatAlmostEqual(a, b, tol) || quatAlmostEqual(a, Flip(b), tol)
}

func quatAlmostEqual(a, b quat.Number, tol float64) bool {
	return utils.Float64AlmostEqual(a.Real, b.Real, tol) &&
		utils.Float64AlmostEqual(a.Imag, b.Imag, tol) &&
		utils.Float64AlmostEqual(a.Jmag, b.Jmag, tol) &&
		utils.Float64AlmostEqual(a.Kmag, b.Kmag, tol)
}

// Slerp takes two quaternions and interpolates between them along the shortest arc on the rotation
// manifold, using the given amount between 0 and 1. The result is a unit quaternion for unit inputs.
func Slerp(qN1, qN2 quat.Number, by float64) quat.Number {
	// A negative inner product means the long way around; flipping one endpoint selects the
	// short arc and represents the same orientation.
	if qN1.Real*qN2.Real+qN1.Imag*qN2.Imag+qN1.Jmag*qN2.Jmag+qN1.Kmag*qN2.Kmag < 0 {
		qN2 = Flip(qN2)
	}
	q1 := mgl64.Quat{W: qN1.Real, V: mgl64.Vec3{qN1.Imag, qN1.Jmag, qN1.Kmag}}
	q2 := mgl64.Quat{W: qN2.Real, V: mgl64.Vec3{qN2.Imag, qN2.Jmag, qN2.Kmag}}

	q3 := mgl64.QuatSlerp(q1, q2, by)

	return Normalize(quat.Number{Real: q3.W, Imag: q3.X(), Jmag: q3.Y(), Kmag: q3.Z()})
}

// AngularDistance returns the arc length between two unit quaternions on the rotation manifold,
// in radians, always taking the shorter arc. The result is in [0, pi].
func AngularDistance(a, b quat.Number) float64 {
	dot := a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
	return 2 * math.Acos(utils.Clamp(math.Abs(dot), 0, 1))
}

// RandomQuaternion returns a uniformly distributed random unit quaternion, using the subgroup
// algorithm from Shoemake's "Uniform random rotations". A nil source falls back to a fixed seed.
func RandomQuaternion(rnd *rand.Rand) quat.Number {
	if rnd == nil {
		//nolint:gosec
		rnd = rand.New(rand.NewSource(1))
	}
	u1 := rnd.Float64()
	u2 := rnd.Float64() * 2 * math.Pi
	u3 := rnd.Float64() * 2 * math.Pi
	r1 := math.Sqrt(1 - u1)
	r2 := math.Sqrt(u1)
	return quat.Number{
		Real: r2 * math.Cos(u3),
		Imag: r1 * math.Sin(u2),
		Jmag: r1 * math.Cos(u2),
		Kmag: r2 * math.Sin(u3),
	}
}
