package models

import (
	"math"

	apperrors "github.com/ak/tcs/internal/pkg/errors"
)

// BatchScale is the transient display-layer state for proportional rescaling
// of a semi-finished card. A chef edits whichever ingredient they have a
// fixed quantity of; every other displayed quantity rescales by the derived
// factor while the stored base quantities stay untouched. The state is
// session-local and never persisted: every card open starts at identity.
type BatchScale struct {
	factor    float64
	overrides map[int]float64
}

// NewBatchScale returns the identity scale (factor 1.0, no overrides).
func NewBatchScale() *BatchScale {
	return &BatchScale{factor: 1.0}
}

// Factor returns the current global scale factor.
func (s *BatchScale) Factor() float64 {
	return s.factor
}

// Edit anchors the scale on base[index] = value and recomputes the factor.
// Invalid input leaves existing state untouched: the value must be a
// non-negative finite number and the anchor's base quantity must be positive,
// since a zero reference cannot establish a scale factor.
func (s *BatchScale) Edit(base []float64, index int, value float64) error {
	if index < 0 || index >= len(base) {
		return apperrors.IndexOutOfRange(index, len(base))
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return apperrors.InvalidWeight("quantity", value)
	}
	if base[index] <= 0 {
		return apperrors.ZeroBaseRescale(index)
	}

	s.factor = value / base[index]
	// The edited index overrides to the exact typed value so it round-trips
	// without floating-point drift.
	s.overrides = map[int]float64{index: value}
	return nil
}

// Displayed returns the presentation quantities for the given base vector:
// the override for the anchored index, base[j] * factor everywhere else.
func (s *BatchScale) Displayed(base []float64) []float64 {
	out := make([]float64, len(base))
	for j, b := range base {
		if v, ok := s.overrides[j]; ok {
			out[j] = v
			continue
		}
		out[j] = b * s.factor
	}
	return out
}

// DisplayedAt returns the presentation quantity of a single line.
func (s *BatchScale) DisplayedAt(base []float64, index int) (float64, error) {
	if index < 0 || index >= len(base) {
		return 0, apperrors.IndexOutOfRange(index, len(base))
	}
	if v, ok := s.overrides[index]; ok {
		return v, nil
	}
	return base[index] * s.factor, nil
}

// Reset restores the identity state, reverting every displayed quantity to
// its stored base value exactly.
func (s *BatchScale) Reset() {
	s.factor = 1.0
	s.overrides = nil
}
