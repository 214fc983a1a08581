package label

import (
	"strings"
	"testing"

	"github.com/boombuler/barcode/code128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearBarcodeEmptyPayload(t *testing.T) {
	_, err := LinearBarcode("", BarcodeOptions{WidthPx: 200, HeightPx: 60})
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestLinearBarcodeUnsupportedCharacter(t *testing.T) {
	_, err := LinearBarcode("序列号", BarcodeOptions{WidthPx: 200, HeightPx: 60})
	assert.ErrorIs(t, err, ErrUnsupportedCharacter)
}

func TestLinearBarcodeDimensions(t *testing.T) {
	img, err := LinearBarcode("00000152:2770:000044:1.25", BarcodeOptions{WidthPx: 600, HeightPx: 60})
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, 600, bounds.Dx())
	assert.Equal(t, 60, bounds.Dy())
}

func TestLinearBarcodeDenserThanRequestedWidth(t *testing.T) {
	// A full payload needs more Code 128 modules than a narrow field has
	// pixels.  The raster must grow to the intrinsic module count rather
	// than fail; the surface shrinks it back to the field's size.
	payload := "00000152:2770:000044:1.25"
	intrinsic, err := code128.Encode(payload)
	require.NoError(t, err)

	img, err := LinearBarcode(payload, BarcodeOptions{WidthPx: 100, HeightPx: 60})
	require.NoError(t, err)
	assert.Equal(t, intrinsic.Bounds().Dx(), img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())
}

func TestQRCodeEmptyPayload(t *testing.T) {
	_, err := QRCode("", 100)
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestQRCodeSquare(t *testing.T) {
	img, err := QRCode("00000152:2770:000044:1.25", 120)
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, bounds.Dx(), bounds.Dy())
	assert.GreaterOrEqual(t, bounds.Dx(), 21)
}

func TestPngDataURI(t *testing.T) {
	img, err := QRCode("payload", 64)
	require.NoError(t, err)
	uri, err := pngDataURI(img)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	assert.Greater(t, len(uri), len("data:image/png;base64,"))
}
