package errors

import (
	"math"
	"unicode"
)

// Limits for user-supplied parameters.
const (
	MaxGridSize   = 512
	MaxWidth      = 8192
	MaxScale      = 8
	MaxPathLength = 1024
)

// ValidateDimensions checks that rows and cols are both in 1..MaxGridSize.
func ValidateDimensions(rows, cols int) error {
	if rows < 1 || rows > MaxGridSize {
		return New(ErrCodeInvalidInput, "rows must be between 1 and %d, got %d", MaxGridSize, rows)
	}
	if cols < 1 || cols > MaxGridSize {
		return New(ErrCodeInvalidInput, "cols must be between 1 and %d, got %d", MaxGridSize, cols)
	}
	return nil
}

// ValidateFraction checks that v is a finite number in [0, 1].
func ValidateFraction(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return New(ErrCodeInvalidInput, "%s must be between 0 and 1, got %v", name, v)
	}
	return nil
}

// ValidateMargin checks that the margin fraction leaves room for the grid.
func ValidateMargin(v float64) error {
	if math.IsNaN(v) || v < 0 || v >= 0.5 {
		return New(ErrCodeInvalidInput, "margin must be in [0, 0.5), got %v", v)
	}
	return nil
}

// ValidateWidth checks the canvas width in pixels.
func ValidateWidth(w float64) error {
	if math.IsNaN(w) || w < 1 || w > MaxWidth {
		return New(ErrCodeInvalidInput, "width must be between 1 and %d, got %v", MaxWidth, w)
	}
	return nil
}

// ValidateScale checks the raster scale factor.
func ValidateScale(s float64) error {
	if math.IsNaN(s) || s <= 0 || s > MaxScale {
		return New(ErrCodeInvalidInput, "scale must be in (0, %d], got %v", MaxScale, s)
	}
	return nil
}

// ValidateStrokeWeight rejects negative or non-finite stroke weights.
func ValidateStrokeWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return New(ErrCodeInvalidInput, "stroke weight must be >= 0, got %v", w)
	}
	return nil
}

// ValidateOutputPath checks a user-supplied output path or base name:
// non-empty, bounded length and free of control characters.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	if len(path) > MaxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", MaxPathLength)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}
	return nil
}
