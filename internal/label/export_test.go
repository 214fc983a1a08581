package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halicz/shopfloor/internal/model"
)

func TestExportImportRoundTrip(t *testing.T) {
	// One field of every kind, already normalized so the round trip is exact.
	cfg := DefaultConfig()
	cfg.CompanyName = "Halicz Metalworks"
	cfg.LogoURL = "https://example.com/logo.png"
	require.NoError(t, Normalize(&cfg))

	data, err := Export(cfg)
	require.NoError(t, err)

	got, err := Import(data)
	require.NoError(t, err)

	assert.Equal(t, cfg.WidthMM, got.WidthMM)
	assert.Equal(t, cfg.HeightMM, got.HeightMM)
	assert.Equal(t, cfg.Orientation, got.Orientation)
	assert.Equal(t, cfg.CompanyName, got.CompanyName)
	assert.Equal(t, cfg.LogoURL, got.LogoURL)
	assert.Equal(t, cfg.Fields, got.Fields)
}

func TestImportRejectsUnknownKind(t *testing.T) {
	doc := []byte(`{"config":{"width_mm":100,"height_mm":60},"fields":[
		{"id":"x","kind":"hologram","visible":true,"enabled":true}]}`)
	_, err := Import(doc)
	assert.ErrorContains(t, err, "unknown kind")
}

func TestImportRejectsDuplicateIDs(t *testing.T) {
	doc := []byte(`{"config":{"width_mm":100,"height_mm":60},"fields":[
		{"id":"x","kind":"text"},{"id":"x","kind":"text"}]}`)
	_, err := Import(doc)
	assert.ErrorContains(t, err, "duplicate id")
}

func TestImportRejectsZeroDimensions(t *testing.T) {
	doc := []byte(`{"config":{"width_mm":0,"height_mm":60},"fields":[]}`)
	_, err := Import(doc)
	assert.Error(t, err)
}

func TestNormalizeGeometry(t *testing.T) {
	cfg := model.LabelConfig{
		WidthMM:  100,
		HeightMM: 60,
		Fields: []model.LabelField{
			{ID: "a", Kind: model.FieldText, Width: -4, Height: 10, Rotation: 450, Opacity: 0},
		},
	}
	require.NoError(t, Normalize(&cfg))
	f := cfg.Fields[0]
	assert.Equal(t, 0.0, f.Width)          // negative size clamped
	assert.Equal(t, 90.0, f.Rotation)      // rotation wrapped into [0,360)
	assert.Equal(t, 1.0, f.Opacity)        // unset opacity means opaque
	assert.Equal(t, 10.0, f.Height)        // untouched
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Normalize(&cfg))
	kinds := map[model.FieldKind]bool{}
	for _, f := range cfg.Fields {
		kinds[f.Kind] = true
	}
	// The built-in layout exercises every kind.
	assert.True(t, kinds[model.FieldText])
	assert.True(t, kinds[model.FieldBarcode])
	assert.True(t, kinds[model.FieldQR])
	assert.True(t, kinds[model.FieldImage])
}
