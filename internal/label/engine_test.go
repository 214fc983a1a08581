package label

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halicz/shopfloor/internal/model"
)

func baseConfig(fields ...model.LabelField) model.LabelConfig {
	return model.LabelConfig{WidthMM: 100, HeightMM: 60, Fields: fields}
}

func textField(id string, z int) model.LabelField {
	return model.LabelField{
		ID: id, Name: id, Kind: model.FieldText,
		X: 5, Y: 5, Width: 40, Height: 10,
		Opacity: 1, ZIndex: z, Visible: true, Enabled: true,
	}
}

func TestRenderInvisibleFieldLeavesNoTrace(t *testing.T) {
	kinds := []model.FieldKind{model.FieldText, model.FieldBarcode, model.FieldQR, model.FieldImage}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		hidden := model.LabelField{
			ID:          "ghost-field",
			Name:        "Ghost Name",
			Kind:        kinds[rng.Intn(len(kinds))],
			X:           rng.Float64() * 100,
			Y:           rng.Float64() * 60,
			Width:       rng.Float64() * 80,
			Height:      rng.Float64() * 40,
			Rotation:    rng.Float64() * 720,
			FontSize:    rng.Float64() * 30,
			Color:       "#123456",
			Background:  "#abcdef",
			BorderWidth: rng.Float64() * 3,
			Padding:     rng.Float64() * 5,
			Opacity:     rng.Float64(),
			ZIndex:      rng.Intn(20),
			Visible:     false,
			Enabled:     rng.Intn(2) == 0,
			Locked:      rng.Intn(2) == 0,
		}
		cfg := baseConfig(textField("kept", 1), hidden)
		values := map[string]string{"kept": "kept-value", "ghost-field": "ghost-value"}

		for _, s := range []Surface{NewScreenSurface(), NewPrintSurface()} {
			doc := Render(cfg, values, s, Options{Preview: true})
			assert.NotContains(t, doc, "ghost-field")
			assert.NotContains(t, doc, "ghost-value")
			assert.NotContains(t, doc, "Ghost Name")
			assert.Contains(t, doc, "kept-value")
		}
	}
}

func TestRenderDisabledFieldSkipped(t *testing.T) {
	f := textField("off", 1)
	f.Enabled = false
	doc := Render(baseConfig(f), map[string]string{"off": "nope"}, NewScreenSurface(), Options{})
	assert.NotContains(t, doc, "nope")
}

func TestRenderEmptyBarcodePayloadIsNonFatal(t *testing.T) {
	bc := model.LabelField{
		ID: "barcode", Name: "Barcode", Kind: model.FieldBarcode,
		X: 5, Y: 30, Width: 60, Height: 20,
		Opacity: 1, ZIndex: 1, Visible: true, Enabled: true,
	}
	cfg := baseConfig(textField("first", 1), textField("second", 1), bc)
	values := map[string]string{"first": "Alpha", "second": "Beta"} // no barcode value

	doc := Render(cfg, values, NewPrintSurface(), Options{})
	assert.Contains(t, doc, "Alpha")
	assert.Contains(t, doc, "Beta")
	assert.Contains(t, doc, `data-field="barcode"`) // box renders
	assert.NotContains(t, doc, "<img")              // but holds no bitmap
}

func TestRenderStackingOrderStable(t *testing.T) {
	// Mixed z-indices with a tie: paint order must be c (z=0), a, b (tie kept
	// in list order), d.
	a := textField("aa", 1)
	b := textField("bb", 1)
	c := textField("cc", 0)
	d := textField("dd", 5)
	doc := Render(baseConfig(a, b, c, d), map[string]string{
		"aa": "vaa", "bb": "vbb", "cc": "vcc", "dd": "vdd",
	}, NewScreenSurface(), Options{})

	order := []string{"vcc", "vaa", "vbb", "vdd"}
	last := -1
	for _, v := range order {
		idx := strings.Index(doc, v)
		require.Greater(t, idx, last, "expected %q after previous field", v)
		last = idx
	}
}

func TestRenderTextPlaceholderOnlyInPreview(t *testing.T) {
	f := textField("lot_number", 1)
	f.Name = "Lot Number"
	cfg := baseConfig(f)

	preview := Render(cfg, nil, NewScreenSurface(), Options{Preview: true})
	assert.Contains(t, preview, "Lot Number")

	printed := Render(cfg, nil, NewPrintSurface(), Options{})
	assert.NotContains(t, printed, "Lot Number")
	assert.Contains(t, printed, `data-field="lot_number"`)
}

func TestRenderQRProducesEmbeddedBitmap(t *testing.T) {
	qr := model.LabelField{
		ID: "qr_code", Name: "QR", Kind: model.FieldQR,
		X: 70, Y: 30, Width: 25, Height: 25,
		Opacity: 1, ZIndex: 1, Visible: true, Enabled: true,
	}
	doc := Render(baseConfig(qr), map[string]string{"qr_code": "00000001:P:000001:1.00"},
		NewPrintSurface(), Options{})
	assert.Contains(t, doc, "data:image/png;base64,")
}

func TestRenderBarcodeCaption(t *testing.T) {
	bc := model.LabelField{
		ID: "barcode", Name: "Barcode", Kind: model.FieldBarcode,
		X: 5, Y: 30, Width: 60, Height: 20, ShowValue: true,
		Opacity: 1, ZIndex: 1, Visible: true, Enabled: true,
	}
	payload := "00000152:2770:000044:1.25"
	doc := Render(baseConfig(bc), map[string]string{"barcode": payload}, NewPrintSurface(), Options{})
	assert.Contains(t, doc, "data:image/png;base64,")
	assert.Contains(t, doc, payload) // human-readable line under the bars
}

func TestRenderDefaultLayoutEmbedsBothSymbols(t *testing.T) {
	// The built-in layout with a real production payload: the 64 mm barcode
	// field holds fewer pixels than the payload has Code 128 modules, and
	// the label must still carry both machine-readable symbols.
	payload := "00000152:2770:000044:1.25"
	serial := "07-M2-040125-00003-0915"
	values := map[string]string{
		FieldSerial:      serial,
		FieldBarcodeID:   payload,
		FieldQRID:        payload,
		FieldCompany:     "Halicz Foods",
		FieldProductName: "Smoked Ham",
		FieldWeight:      "1.25 kg",
	}

	doc := Render(DefaultConfig(), values, NewPrintSurface(), Options{})
	assert.Equal(t, 2, strings.Count(doc, "data:image/png;base64,"),
		"expected the linear barcode and the QR symbol as embedded bitmaps")
	assert.Contains(t, doc, serial)
	assert.Contains(t, doc, payload) // barcode caption, ShowValue is on
}

func TestRenderSurfaceUnits(t *testing.T) {
	cfg := baseConfig(textField("x", 1))
	values := map[string]string{"x": "v"}

	screen := Render(cfg, values, NewScreenSurface(), Options{})
	assert.Contains(t, screen, "px")
	assert.NotContains(t, screen, "@page")

	printed := Render(cfg, values, NewPrintSurface(), Options{})
	assert.Contains(t, printed, "@page{size:100.000mm 60.000mm;margin:0}")
	assert.Contains(t, printed, "<!DOCTYPE html>")
}

func TestRenderLogoFallback(t *testing.T) {
	logo := model.LabelField{
		ID: "logo", Name: "Logo", Kind: model.FieldImage,
		X: 70, Y: 3, Width: 25, Height: 12,
		Opacity: 1, ZIndex: 1, Visible: true, Enabled: true,
	}

	// Without a logo reference: placeholder in preview, nothing in print.
	cfg := baseConfig(logo)
	preview := Render(cfg, nil, NewScreenSurface(), Options{Preview: true})
	assert.Contains(t, preview, "Logo")
	printed := Render(cfg, nil, NewPrintSurface(), Options{})
	assert.NotContains(t, printed, "<img")

	// With a logo reference the image is drawn on both surfaces.
	cfg.LogoURL = "https://example.com/logo.png"
	printed = Render(cfg, nil, NewPrintSurface(), Options{})
	assert.Contains(t, printed, `src="https://example.com/logo.png"`)
	assert.Contains(t, printed, "object-fit:contain")
}

func TestRenderGeometryMatchesBetweenSurfaces(t *testing.T) {
	// The same field must resolve to the same physical position on both
	// surfaces: the px values are the mm values scaled by exactly 96/25.4.
	f := textField("x", 1)
	f.X, f.Y, f.Width, f.Height = 10, 20, 50, 25
	cfg := baseConfig(f)
	values := map[string]string{"x": "v"}

	printed := Render(cfg, values, NewPrintSurface(), Options{})
	assert.Contains(t, printed, "left:10.000mm;top:20.000mm;width:50.000mm;height:25.000mm")

	screen := Render(cfg, values, NewScreenSurface(), Options{})
	assert.Contains(t, screen, fmt.Sprintf("left:%.2fpx;top:%.2fpx;width:%.2fpx;height:%.2fpx",
		MmToPx(10), MmToPx(20), MmToPx(50), MmToPx(25)))
}
