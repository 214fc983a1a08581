// Package label renders a declarative label layout against a record of field
// values.  One geometry resolver turns every field into an absolute
// millimeter box; the screen and print surfaces consume those same boxes and
// differ only in the unit they emit (CSS pixels at 96 DPI for the on-screen
// preview, physical millimeters for the print document).  Keeping a single
// conversion path is what stops preview and print from drifting apart.
package label

import (
	"math"

	"github.com/halicz/shopfloor/internal/model"
)

// Millimeter-to-pixel conversion follows the CSS 96 DPI convention.
const (
	mmPerInch = 25.4
	screenDPI = 96
)

// MmToPx converts millimeters to CSS pixels for screen surfaces.
func MmToPx(mm float64) float64 { return mm * screenDPI / mmPerInch }

// NormalizeRotation maps any angle onto [0,360).
func NormalizeRotation(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// Box is an absolute rectangle in millimeters.
type Box struct {
	X, Y, W, H float64
}

// Resolve returns the field's outer box.  Negative sizes are clamped to zero
// so a malformed document degrades to an invisible sliver instead of
// breaking the layout.
func Resolve(f model.LabelField) Box {
	return Box{
		X: f.X,
		Y: f.Y,
		W: math.Max(f.Width, 0),
		H: math.Max(f.Height, 0),
	}
}

// ContentBox shrinks the outer box by the field padding on all sides.  The
// result never goes negative; a padding larger than the box collapses the
// content area to a point at the box center.
func ContentBox(f model.LabelField) Box {
	b := Resolve(f)
	p := math.Max(f.Padding, 0)
	w := b.W - 2*p
	h := b.H - 2*p
	if w < 0 {
		b.X += b.W / 2
		w = 0
	} else {
		b.X += p
	}
	if h < 0 {
		b.Y += b.H / 2
		h = 0
	} else {
		b.Y += p
	}
	b.W, b.H = w, h
	return b
}

// FitInside scales (srcW, srcH) to the largest size that fits in the box
// while preserving aspect ratio and returns the centered placement.  A zero
// source or zero box yields a zero-size placement at the box center.
func FitInside(b Box, srcW, srcH float64) Box {
	if srcW <= 0 || srcH <= 0 || b.W <= 0 || b.H <= 0 {
		return Box{X: b.X + b.W/2, Y: b.Y + b.H/2}
	}
	scale := math.Min(b.W/srcW, b.H/srcH)
	w := srcW * scale
	h := srcH * scale
	return Box{
		X: b.X + (b.W-w)/2,
		Y: b.Y + (b.H-h)/2,
		W: w,
		H: h,
	}
}
