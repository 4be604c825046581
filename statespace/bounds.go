package statespace

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Bounds is an axis-aligned box region constraining a three-value sub-space, applied
// independently per scalar component.
type Bounds struct {
	Min r3.Vector `json:"min"`
	Max r3.Vector `json:"max"`
}

// NewSymmetricBounds returns bounds of [-extent, extent] on every axis.
func NewSymmetricBounds(extent float64) Bounds {
	return Bounds{
		Min: r3.Vector{X: -extent, Y: -extent, Z: -extent},
		Max: r3.Vector{X: extent, Y: extent, Z: extent},
	}
}

// Validate returns an error if any axis has an empty or inverted range.
func (b Bounds) Validate() error {
	var err error
	for _, axis := range []struct {
		name     string
		min, max float64
	}{
		{"x", b.Min.X, b.Max.X},
		{"y", b.Min.Y, b.Max.Y},
		{"z", b.Min.Z, b.Max.Z},
	} {
		if axis.min >= axis.max {
			err = multierr.Append(err, errors.Errorf("%s bound min %f is not below max %f", axis.name, axis.min, axis.max))
		}
	}
	return err
}

// Contains reports whether the given three values lie within the box.
func (b Bounds) Contains(v []float64) bool {
	return v[0] >= b.Min.X && v[0] <= b.Max.X &&
		v[1] >= b.Min.Y && v[1] <= b.Max.Y &&
		v[2] >= b.Min.Z && v[2] <= b.Max.Z
}

// String returns a human readable representation of the bounds.
func (b Bounds) String() string {
	return fmt.Sprintf("[%.2f,%.2f]x[%.2f,%.2f]x[%.2f,%.2f]", b.Min.X, b.Max.X, b.Min.Y, b.Max.Y, b.Min.Z, b.Max.Z)
}

// Weights are the per-sub-space scalars used by the composite distance metric. Position
// and orientation default to twice the velocity weights so that configuration-space
// proximity dominates instantaneous-velocity proximity when the planner compares states.
type Weights struct {
	Position        float64 `json:"position"`
	LinearVelocity  float64 `json:"linear_velocity"`
	AngularVelocity float64 `json:"angular_velocity"`
	Orientation     float64 `json:"orientation"`
}

// DefaultWeights returns the standard distance weighting: position 1.0, linear velocity
// 0.5, angular velocity 0.5, orientation 1.0.
func DefaultWeights() Weights {
	return Weights{Position: 1.0, LinearVelocity: 0.5, AngularVelocity: 0.5, Orientation: 1.0}
}

// Validate returns an error if any weight is negative.
func (w Weights) Validate() error {
	var err error
	for _, sub := range []struct {
		name   string
		weight float64
	}{
		{"position", w.Position},
		{"linear velocity", w.LinearVelocity},
		{"angular velocity", w.AngularVelocity},
		{"orientation", w.Orientation},
	} {
		if sub.weight < 0 {
			err = multierr.Append(err, errors.Errorf("%s weight must not be negative, got %f", sub.name, sub.weight))
		}
	}
	return err
}
