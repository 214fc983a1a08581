package label

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halicz/shopfloor/internal/model"
)

func TestMmToPx(t *testing.T) {
	assert.InDelta(t, 96.0, MmToPx(25.4), 1e-9) // one inch
	assert.InDelta(t, 0.0, MmToPx(0), 1e-9)
	assert.InDelta(t, 378.0, MmToPx(100), 0.05) // 100mm label edge
}

func TestNormalizeRotation(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		360:  0,
		90:   90,
		725:  5,
		-90:  270,
		-360: 0,
	}
	for in, want := range cases {
		assert.InDelta(t, want, NormalizeRotation(in), 1e-9, "in=%v", in)
	}
}

func TestResolveClampsNegativeSizes(t *testing.T) {
	b := Resolve(model.LabelField{X: 5, Y: 6, Width: -10, Height: -1})
	assert.Equal(t, Box{X: 5, Y: 6, W: 0, H: 0}, b)
}

func TestContentBoxPadding(t *testing.T) {
	f := model.LabelField{X: 10, Y: 10, Width: 40, Height: 20, Padding: 2}
	b := ContentBox(f)
	assert.Equal(t, Box{X: 12, Y: 12, W: 36, H: 16}, b)
}

func TestContentBoxOversizedPaddingCollapses(t *testing.T) {
	f := model.LabelField{X: 0, Y: 0, Width: 4, Height: 4, Padding: 10}
	b := ContentBox(f)
	assert.Equal(t, 0.0, b.W)
	assert.Equal(t, 0.0, b.H)
	assert.Equal(t, 2.0, b.X) // collapsed to the box center
	assert.Equal(t, 2.0, b.Y)
}

func TestFitInsidePreservesAspect(t *testing.T) {
	// Wide source in a square box: width-bound.
	b := FitInside(Box{X: 0, Y: 0, W: 10, H: 10}, 2, 1)
	assert.InDelta(t, 10.0, b.W, 1e-9)
	assert.InDelta(t, 5.0, b.H, 1e-9)
	assert.InDelta(t, 0.0, b.X, 1e-9)
	assert.InDelta(t, 2.5, b.Y, 1e-9) // vertically centered

	// Square source in a wide box: height-bound and horizontally centered.
	b = FitInside(Box{X: 5, Y: 5, W: 30, H: 10}, 1, 1)
	assert.InDelta(t, 10.0, b.W, 1e-9)
	assert.InDelta(t, 10.0, b.H, 1e-9)
	assert.InDelta(t, 15.0, b.X, 1e-9)
	assert.InDelta(t, 5.0, b.Y, 1e-9)
}
