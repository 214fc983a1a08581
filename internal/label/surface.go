package label

import (
	"fmt"
	"html"
	"strings"

	"github.com/halicz/shopfloor/internal/model"
)

// unitFunc formats a millimeter length in the surface's output unit.
type unitFunc func(mm float64) string

func pxUnit(mm float64) string { return fmt.Sprintf("%.2fpx", MmToPx(mm)) }
func mmUnit(mm float64) string { return fmt.Sprintf("%.3fmm", mm) }

// ScreenSurface assembles the interactive preview: a relative container div
// sized in CSS pixels holding one absolutely positioned child per field.
// The markup is an embeddable fragment, not a standalone document.
type ScreenSurface struct {
	b strings.Builder
}

// NewScreenSurface returns an empty preview surface.
func NewScreenSurface() *ScreenSurface { return &ScreenSurface{} }

func (s *ScreenSurface) Begin(cfg model.LabelConfig) {
	fmt.Fprintf(&s.b,
		`<div class="label-canvas" style="position:relative;overflow:hidden;background:#fff;width:%s;height:%s">`,
		pxUnit(cfg.WidthMM), pxUnit(cfg.HeightMM))
}

func (s *ScreenSurface) Field(f model.LabelField, outer Box, content Content) {
	writeField(&s.b, f, outer, content, pxUnit)
}

func (s *ScreenSurface) Document() string {
	return s.b.String() + "</div>"
}

// PrintSurface assembles a self-contained printable document: a fixed page
// exactly the label's physical size at zero margin, with every field
// positioned in millimeters and every bitmap embedded as a data URI, so the
// document needs nothing else once handed to the print dialog.
type PrintSurface struct {
	b strings.Builder
}

// NewPrintSurface returns an empty print surface.
func NewPrintSurface() *PrintSurface { return &PrintSurface{} }

func (s *PrintSurface) Begin(cfg model.LabelConfig) {
	fmt.Fprintf(&s.b, `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>%s</title><style>
@page{size:%s %s;margin:0}
html,body{margin:0;padding:0}
body{width:%s;height:%s;position:relative;overflow:hidden;background:#fff}
</style></head><body>`,
		html.EscapeString(cfg.CompanyName),
		mmUnit(cfg.WidthMM), mmUnit(cfg.HeightMM),
		mmUnit(cfg.WidthMM), mmUnit(cfg.HeightMM))
}

func (s *PrintSurface) Field(f model.LabelField, outer Box, content Content) {
	writeField(&s.b, f, outer, content, mmUnit)
}

func (s *PrintSurface) Document() string {
	return s.b.String() + "</body></html>"
}

// writeField emits one field box and its content.  Both surfaces share this
// path; only the unit function differs, so a given layout resolves to the
// same geometry on screen and on paper.
func writeField(b *strings.Builder, f model.LabelField, outer Box, content Content, unit unitFunc) {
	var style strings.Builder
	fmt.Fprintf(&style, "position:absolute;box-sizing:border-box;left:%s;top:%s;width:%s;height:%s;z-index:%d",
		unit(outer.X), unit(outer.Y), unit(outer.W), unit(outer.H), f.ZIndex)
	if f.Background != "" {
		fmt.Fprintf(&style, ";background:%s", f.Background)
	}
	if f.BorderWidth > 0 {
		color := f.BorderColor
		if color == "" {
			color = "#000"
		}
		fmt.Fprintf(&style, ";border:%s solid %s", unit(f.BorderWidth), color)
	}
	if f.BorderRadius > 0 {
		fmt.Fprintf(&style, ";border-radius:%s", unit(f.BorderRadius))
	}
	if f.Opacity > 0 && f.Opacity < 1 {
		fmt.Fprintf(&style, ";opacity:%.3f", f.Opacity)
	}
	if f.Rotation != 0 {
		fmt.Fprintf(&style, ";transform:rotate(%.2fdeg);transform-origin:center center", f.Rotation)
	}
	if f.Kind == model.FieldText {
		if f.Padding > 0 {
			fmt.Fprintf(&style, ";padding:%s", unit(f.Padding))
		}
		if f.FontFamily != "" {
			fmt.Fprintf(&style, ";font-family:%s", f.FontFamily)
		}
		if f.FontSize > 0 {
			fmt.Fprintf(&style, ";font-size:%.1fpt", f.FontSize)
		}
		if f.FontWeight != "" {
			fmt.Fprintf(&style, ";font-weight:%s", f.FontWeight)
		}
		if f.Color != "" {
			fmt.Fprintf(&style, ";color:%s", f.Color)
		}
	}

	fmt.Fprintf(b, `<div data-field="%s" style="%s">`, html.EscapeString(f.ID), style.String())
	writeContent(b, f, outer, content, unit)
	b.WriteString("</div>")
}

func writeContent(b *strings.Builder, f model.LabelField, outer Box, content Content, unit unitFunc) {
	switch content.Kind {
	case ContentEmpty:
		// Styled box only; nothing inside.

	case ContentText:
		if content.Placeholder {
			fmt.Fprintf(b, `<span style="opacity:.4">%s</span>`, html.EscapeString(content.Text))
			return
		}
		b.WriteString(html.EscapeString(content.Text))

	case ContentImage:
		if content.ImageBox == nil {
			// Intrinsic size unknown (external logo): let the box contain it.
			fmt.Fprintf(b, `<img src="%s" alt="" style="width:100%%;height:100%%;object-fit:contain">`,
				html.EscapeString(content.ImageURI))
			return
		}
		// Bitmap placement was resolved in label space; reposition it
		// relative to the field box so rotation carries the content along.
		ib := *content.ImageBox
		fmt.Fprintf(b, `<img src="%s" alt="" style="position:absolute;left:%s;top:%s;width:%s;height:%s">`,
			html.EscapeString(content.ImageURI),
			unit(ib.X-outer.X), unit(ib.Y-outer.Y), unit(ib.W), unit(ib.H))
		if content.Caption != "" && content.CaptionBox != nil {
			cb := *content.CaptionBox
			fmt.Fprintf(b, `<div style="position:absolute;left:%s;top:%s;width:%s;height:%s;font-size:6pt;text-align:center;overflow:hidden">%s</div>`,
				unit(cb.X-outer.X), unit(cb.Y-outer.Y), unit(cb.W), unit(cb.H),
				html.EscapeString(content.Caption))
		}
	}
}
