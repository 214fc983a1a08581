package label

import "github.com/halicz/shopfloor/internal/model"

// Well-known field IDs.  The production and reprint handlers bind values
// under these keys; a layout that wants a value on the label places a field
// with the matching ID.
const (
	FieldSerial      = "serial_number"
	FieldBarcodeID   = "barcode"
	FieldQRID        = "qr_code"
	FieldLogo        = "logo"
	FieldCompany     = "company_name"
	FieldProductName = "product_name"
	FieldProductCode = "product_code"
	FieldWeight      = "weight"
	FieldDate        = "date"
)

// DefaultConfig is the built-in 100x60mm layout used when no configuration
// row exists yet.  It places one field of every kind so a fresh install can
// print a complete label out of the box.
func DefaultConfig() model.LabelConfig {
	return model.LabelConfig{
		WidthMM:     100,
		HeightMM:    60,
		Orientation: "landscape",
		Fields: []model.LabelField{
			{
				ID: FieldCompany, Name: "Company", Kind: model.FieldText,
				X: 4, Y: 3, Width: 60, Height: 8,
				FontFamily: "Arial", FontSize: 12, FontWeight: "bold",
				Color: "#000", Opacity: 1, ZIndex: 1, Visible: true, Enabled: true,
			},
			{
				ID: FieldLogo, Name: "Logo", Kind: model.FieldImage,
				X: 70, Y: 3, Width: 26, Height: 12,
				Opacity: 1, ZIndex: 1, Visible: true, Enabled: true,
			},
			{
				ID: FieldProductName, Name: "Product", Kind: model.FieldText,
				X: 4, Y: 13, Width: 60, Height: 7,
				FontFamily: "Arial", FontSize: 10,
				Color: "#000", Opacity: 1, ZIndex: 1, Visible: true, Enabled: true,
			},
			{
				ID: FieldSerial, Name: "Serial Number", Kind: model.FieldText,
				X: 4, Y: 21, Width: 60, Height: 6,
				FontFamily: "Courier New", FontSize: 9,
				Color: "#000", Opacity: 1, ZIndex: 1, Visible: true, Enabled: true,
			},
			{
				ID: FieldWeight, Name: "Weight", Kind: model.FieldText,
				X: 4, Y: 28, Width: 30, Height: 6,
				FontFamily: "Arial", FontSize: 9,
				Color: "#000", Opacity: 1, ZIndex: 1, Visible: true, Enabled: true,
			},
			{
				ID: FieldBarcodeID, Name: "Barcode", Kind: model.FieldBarcode,
				X: 4, Y: 36, Width: 64, Height: 20, Padding: 1,
				ShowValue: true, Opacity: 1, ZIndex: 1, Visible: true, Enabled: true,
			},
			{
				ID: FieldQRID, Name: "QR", Kind: model.FieldQR,
				X: 72, Y: 34, Width: 24, Height: 24, Padding: 1,
				Opacity: 1, ZIndex: 1, Visible: true, Enabled: true,
			},
		},
	}
}
