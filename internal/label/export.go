package label

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/halicz/shopfloor/internal/model"
)

// ErrMissingConfiguration signals that no layout document exists yet.
// Consumers fall back to DefaultConfig so operators can print before a
// designer ever saved a layout.
var ErrMissingConfiguration = errors.New("no label configuration available")

// Document is the backup/restore wire format: the layout settings and the
// field list as two top-level members, matching what the designer's
// export button produces.
type Document struct {
	Config DocumentConfig     `json:"config"`
	Fields []model.LabelField `json:"fields"`
}

// DocumentConfig carries the layout settings without the field list.
type DocumentConfig struct {
	WidthMM     float64 `json:"width_mm"`
	HeightMM    float64 `json:"height_mm"`
	Orientation string  `json:"orientation"`
	CompanyName string  `json:"company_name"`
	LogoURL     string  `json:"logo_url"`
}

// Export serializes a configuration to the JSON document format.  Row
// identity and timestamps are deliberately left out; an imported document
// always lands in the active configuration slot.
func Export(cfg model.LabelConfig) ([]byte, error) {
	doc := Document{
		Config: DocumentConfig{
			WidthMM:     cfg.WidthMM,
			HeightMM:    cfg.HeightMM,
			Orientation: cfg.Orientation,
			CompanyName: cfg.CompanyName,
			LogoURL:     cfg.LogoURL,
		},
		Fields: cfg.Fields,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Import parses a document produced by Export and returns a normalized
// configuration.  Unknown field kinds are rejected; geometry is normalized
// the same way a designer save is.
func Import(data []byte) (model.LabelConfig, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.LabelConfig{}, fmt.Errorf("parse template document: %w", err)
	}
	cfg := model.LabelConfig{
		WidthMM:     doc.Config.WidthMM,
		HeightMM:    doc.Config.HeightMM,
		Orientation: doc.Config.Orientation,
		CompanyName: doc.Config.CompanyName,
		LogoURL:     doc.Config.LogoURL,
		Fields:      doc.Fields,
	}
	if err := Normalize(&cfg); err != nil {
		return model.LabelConfig{}, err
	}
	return cfg, nil
}

// Normalize enforces the layout invariants in place: positive label
// dimensions, known field kinds, unique field IDs, non-negative sizes,
// rotation in [0,360) and opacity in (0,1].  A zero opacity is treated as
// "unset" and becomes fully opaque, since an intentionally invisible field
// uses the visibility flag instead.
func Normalize(cfg *model.LabelConfig) error {
	if cfg.WidthMM <= 0 || cfg.HeightMM <= 0 {
		return errors.New("label width and height must be positive")
	}
	seen := make(map[string]bool, len(cfg.Fields))
	for i := range cfg.Fields {
		f := &cfg.Fields[i]
		if f.ID == "" {
			return fmt.Errorf("field %d: missing id", i)
		}
		if seen[f.ID] {
			return fmt.Errorf("field %d: duplicate id %q", i, f.ID)
		}
		seen[f.ID] = true
		switch f.Kind {
		case model.FieldText, model.FieldBarcode, model.FieldQR, model.FieldImage:
		default:
			return fmt.Errorf("field %q: unknown kind %q", f.ID, f.Kind)
		}
		f.Width = math.Max(f.Width, 0)
		f.Height = math.Max(f.Height, 0)
		f.Padding = math.Max(f.Padding, 0)
		f.Rotation = NormalizeRotation(f.Rotation)
		if f.Opacity <= 0 || f.Opacity > 1 {
			f.Opacity = 1
		}
	}
	return nil
}
