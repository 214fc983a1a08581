package label

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	qrcode "github.com/skip2/go-qrcode"
)

// Sub-renderer failure kinds.  Both are contained by the render loop: the
// offending field is logged and rendered empty so the rest of the label
// still prints.
var (
	ErrEmptyPayload         = errors.New("empty barcode payload")
	ErrUnsupportedCharacter = errors.New("payload contains characters unsupported by the symbology")
)

// BarcodeOptions size the generated bitmap.  Widths and heights are pixels
// of the raster handed to the surface; the surface then places the bitmap in
// the field's content box.
type BarcodeOptions struct {
	WidthPx  int
	HeightPx int
}

// LinearBarcode encodes payload as Code 128 and scales the bars to the
// requested size.  Code 128 covers the full ASCII range, which is enough for
// the digit/colon payload format produced by the serial formatter.
//
// A payload can carry more modules than the requested width has pixels; in
// that case the raster is produced at the symbol's intrinsic module count
// instead.  The surface scales the bitmap into the field's millimeter
// content box, so a higher-resolution raster costs nothing and every module
// keeps at least one pixel.
func LinearBarcode(payload string, opts BarcodeOptions) (image.Image, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	bc, err := code128.Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCharacter, err)
	}
	w, h := opts.WidthPx, opts.HeightPx
	if minW := bc.Bounds().Dx(); w < minW {
		w = minW
	}
	if h < 1 {
		h = 1
	}
	scaled, err := barcode.Scale(bc, w, h)
	if err != nil {
		return nil, fmt.Errorf("scale barcode: %w", err)
	}
	return scaled, nil
}

// QRCode encodes payload as a QR symbol with medium error recovery.  The
// returned image is square, sizePx on a side.
func QRCode(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	q, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCharacter, err)
	}
	if sizePx < 21 {
		sizePx = 21 // smallest QR version is 21 modules
	}
	return q.Image(sizePx), nil
}

// pngDataURI serializes an image as a base64 PNG data URI suitable for a
// self-contained document.  The bitmap is fully encoded before the document
// referencing it is assembled, so printing never races the renderer.
func pngDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
