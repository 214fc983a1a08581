package label

import (
	"log"
	"math"
	"sort"

	"github.com/halicz/shopfloor/internal/model"
)

// Height reserved under a linear barcode for the human-readable value when
// the field requests one.
const captionHeightMM = 3.0

// ContentKind tells a surface what to draw inside a field box.
type ContentKind int

const (
	ContentEmpty ContentKind = iota // styled box only (hidden value, failed encode, logo placeholder)
	ContentText
	ContentImage
)

// Content is the resolved payload of one field, ready for a surface to
// place.  ImageBox, when set, is the absolute millimeter rectangle the
// bitmap must occupy; a nil ImageBox means "fill the content box preserving
// aspect" and is used for external images whose intrinsic size is unknown.
type Content struct {
	Kind        ContentKind
	Text        string
	Placeholder bool   // design-time stand-in, surfaces may dim it
	ImageURI    string // PNG data URI or external URL
	ImageBox    *Box
	Caption     string // human-readable value beneath a linear barcode
	CaptionBox  *Box
}

// Surface receives resolved fields in paint order and assembles the output
// document.  Begin is called exactly once before the first field.
type Surface interface {
	Begin(cfg model.LabelConfig)
	Field(f model.LabelField, outer Box, content Content)
	Document() string
}

// Options control value resolution during a render pass.
type Options struct {
	// Preview renders design-time placeholders: unbound text fields show
	// their display name and a missing logo shows an outlined stand-in.
	// Final prints render unbound fields empty instead.
	Preview bool
}

// Render interprets the layout against the given field values and draws it
// onto the surface.  Fields paint in ascending stacking order, ties broken
// by list position.  Invisible or disabled fields never reach the surface.
// A failing barcode or QR encode is logged and leaves that one field empty;
// it never aborts the render.
func Render(cfg model.LabelConfig, values map[string]string, s Surface, opts Options) string {
	fields := append([]model.LabelField(nil), cfg.Fields...)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].ZIndex < fields[j].ZIndex })

	s.Begin(cfg)
	for _, f := range fields {
		if !f.Visible || !f.Enabled {
			continue
		}
		f.Rotation = NormalizeRotation(f.Rotation)
		s.Field(f, Resolve(f), resolveContent(cfg, f, values, opts))
	}
	return s.Document()
}

// resolveContent turns one field plus its bound value into surface content.
func resolveContent(cfg model.LabelConfig, f model.LabelField, values map[string]string, opts Options) Content {
	switch f.Kind {
	case model.FieldText:
		v, ok := values[f.ID]
		if !ok || v == "" {
			if opts.Preview {
				return Content{Kind: ContentText, Text: f.Name, Placeholder: true}
			}
			return Content{Kind: ContentEmpty}
		}
		return Content{Kind: ContentText, Text: v}

	case model.FieldBarcode:
		return barcodeContent(f, values[f.ID])

	case model.FieldQR:
		return qrContent(f, values[f.ID])

	case model.FieldImage:
		if cfg.LogoURL != "" {
			return Content{Kind: ContentImage, ImageURI: cfg.LogoURL}
		}
		if opts.Preview {
			return Content{Kind: ContentText, Text: f.Name, Placeholder: true}
		}
		return Content{Kind: ContentEmpty}
	}
	log.Printf("label: field %q has unknown kind %q, rendering empty", f.ID, f.Kind)
	return Content{Kind: ContentEmpty}
}

func barcodeContent(f model.LabelField, payload string) Content {
	inner := ContentBox(f)
	capMM := 0.0
	if f.ShowValue && inner.H > captionHeightMM {
		capMM = captionHeightMM
	}
	barH := inner.H - capMM

	img, err := LinearBarcode(payload, BarcodeOptions{
		WidthPx:  int(math.Round(MmToPx(inner.W))),
		HeightPx: int(math.Round(MmToPx(barH))),
	})
	if err != nil {
		log.Printf("label: barcode field %q: %v", f.ID, err)
		return Content{Kind: ContentEmpty}
	}
	uri, err := pngDataURI(img)
	if err != nil {
		log.Printf("label: barcode field %q: encode png: %v", f.ID, err)
		return Content{Kind: ContentEmpty}
	}

	box := Box{X: inner.X, Y: inner.Y, W: inner.W, H: barH}
	c := Content{Kind: ContentImage, ImageURI: uri, ImageBox: &box}
	if capMM > 0 {
		c.Caption = payload
		cb := Box{X: inner.X, Y: inner.Y + barH, W: inner.W, H: capMM}
		c.CaptionBox = &cb
	}
	return c
}

func qrContent(f model.LabelField, payload string) Content {
	inner := ContentBox(f)
	side := math.Min(inner.W, inner.H)

	img, err := QRCode(payload, int(math.Round(MmToPx(side))))
	if err != nil {
		log.Printf("label: qr field %q: %v", f.ID, err)
		return Content{Kind: ContentEmpty}
	}
	uri, err := pngDataURI(img)
	if err != nil {
		log.Printf("label: qr field %q: encode png: %v", f.ID, err)
		return Content{Kind: ContentEmpty}
	}

	// QR symbols are square; center the largest square that fits.
	box := FitInside(inner, 1, 1)
	return Content{Kind: ContentImage, ImageURI: uri, ImageBox: &box}
}
