package errors

import "math"

// ValidateGridCount checks that a logical grid count (columns, rows, folder
// rows, hotseat icons) is strictly positive.
func ValidateGridCount(field string, n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidSpec, "%s must be positive, got %d", field, n)
	}
	return nil
}

// ValidateDimension checks that a density-independent size is a finite,
// strictly positive number.
func ValidateDimension(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidSpec, "%s must be finite, got %v", field, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidSpec, "%s must be positive, got %v", field, v)
	}
	return nil
}

// ValidateDensity checks that a pixel density is usable as a scale factor.
func ValidateDensity(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return New(ErrCodeInvalidMetrics, "density must be a positive finite number, got %v", d)
	}
	return nil
}
