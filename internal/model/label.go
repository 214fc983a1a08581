package model

import "time"

// FieldKind enumerates the element types a label layout can place.
type FieldKind string

// Supported field kinds.  Unknown kinds are rejected at import/save time so
// the renderer never sees one.
const (
	FieldText    FieldKind = "text"
	FieldBarcode FieldKind = "linear-barcode"
	FieldQR      FieldKind = "qr-code"
	FieldImage   FieldKind = "image"
)

// LabelField is one placeable element of a label layout.  Geometry values
// (X, Y, Width, Height, Padding, border widths) are millimeters, the same
// unit as the configured label dimensions.  Rotation is degrees and is
// normalized into [0,360) when a layout is saved or imported.
//
// Typography fields apply to text elements only.  Locked blocks interactive
// edits in the designer and has no effect on rendering; Visible and Enabled
// both remove the field from any rendered output when false.
type LabelField struct {
	ID           string    `json:"id"`            // stable identifier, doubles as the value-lookup key
	Name         string    `json:"name"`          // display name, also the design-time placeholder text
	Kind         FieldKind `json:"kind"`          // text | linear-barcode | qr-code | image
	X            float64   `json:"x"`             // left edge, mm
	Y            float64   `json:"y"`             // top edge, mm
	Width        float64   `json:"width"`         // mm, non-negative
	Height       float64   `json:"height"`        // mm, non-negative
	Rotation     float64   `json:"rotation"`      // degrees, [0,360)
	FontFamily   string    `json:"font_family,omitempty"`
	FontSize     float64   `json:"font_size,omitempty"` // points
	FontWeight   string    `json:"font_weight,omitempty"`
	Color        string    `json:"color,omitempty"`      // text color, CSS value
	Background   string    `json:"background,omitempty"` // fill color, CSS value
	BorderWidth  float64   `json:"border_width,omitempty"` // mm
	BorderColor  string    `json:"border_color,omitempty"`
	BorderRadius float64   `json:"border_radius,omitempty"` // mm
	Padding      float64   `json:"padding,omitempty"`       // inner padding, mm
	Opacity      float64   `json:"opacity"`                 // [0,1]
	ZIndex       int       `json:"z_index"`                 // higher draws on top
	Visible      bool      `json:"visible"`
	Enabled      bool      `json:"enabled"`
	Locked       bool      `json:"locked"`
	ShowValue    bool      `json:"show_value,omitempty"` // linear-barcode: print the payload beneath the bars
}

// LabelConfig is the layout document owning the field list.  Exactly one
// configuration is treated as active: the most recently created row is
// loaded and overwritten in place, and every consumer (designer, operator
// screen, reprint queue) reads it through the same lookup.
type LabelConfig struct {
	ID          uint64       `json:"id"`
	WidthMM     float64      `json:"width_mm"`
	HeightMM    float64      `json:"height_mm"`
	Orientation string       `json:"orientation"` // informational only
	CompanyName string       `json:"company_name"`
	LogoURL     string       `json:"logo_url"`
	Fields      []LabelField `json:"fields"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
