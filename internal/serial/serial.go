// Package serial derives the identifiers stamped on every produced unit: the
// human-readable serial number printed on the label and the machine-readable
// barcode payload scanned further down the line.  Both are pure functions of
// their inputs so that a record can be reproduced byte-for-byte for reprints.
package serial

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSequence is returned when any of the sequence numbers supplied to
// Format is zero or negative.  Handlers should translate this into an HTTP
// 400 response; a malformed serial must never be persisted.
var ErrInvalidSequence = errors.New("sequence number must be positive")

// Defaults applied when a user record carries no short codes.  Legacy
// operator accounts created before the codes were mandatory fall back to
// these values so their serials stay parseable.
const (
	DefaultOperatorCode = "00"
	DefaultMachineCode  = "M1"
)

// Input collects everything needed to derive one unit's identifiers.  The
// timestamp is taken as-is; callers decide which clock and zone to supply so
// that formatting stays deterministic under test.
type Input struct {
	OperatorCode string    // operator short code, e.g. "07"
	MachineCode  string    // machine short code, e.g. "M2"
	Timestamp    time.Time // production timestamp in the producing process' zone
	OperatorSeq  int64     // units produced under the active assignment, 1-based
	GlobalSeq    int64     // system-wide unit counter
	ProductCode  string    // product short code, e.g. "2770"
	ProductSeq   int64     // per-product unit counter
	Quantity     float64   // measured quantity (weight), two fractional digits
}

// Format builds the serial number and barcode payload for one produced unit.
//
//	serial  = {op}-{machine}-{DDMMYY}-{opSeq:05d}-{HHMM}
//	payload = {globalSeq:08d}:{productCode}:{productSeq:06d}:{quantity:.2f}
//
// Empty operator or machine codes fall back to the package defaults.  All
// three sequence numbers must be positive; otherwise ErrInvalidSequence is
// returned and both strings are empty.
func Format(in Input) (serialNumber, barcodePayload string, err error) {
	if in.OperatorSeq <= 0 || in.GlobalSeq <= 0 || in.ProductSeq <= 0 {
		return "", "", ErrInvalidSequence
	}
	op := in.OperatorCode
	if op == "" {
		op = DefaultOperatorCode
	}
	machine := in.MachineCode
	if machine == "" {
		machine = DefaultMachineCode
	}
	serialNumber = fmt.Sprintf("%s-%s-%s-%05d-%s",
		op, machine, in.Timestamp.Format("020106"), in.OperatorSeq, in.Timestamp.Format("1504"))
	barcodePayload = fmt.Sprintf("%08d:%s:%06d:%.2f",
		in.GlobalSeq, in.ProductCode, in.ProductSeq, in.Quantity)
	return serialNumber, barcodePayload, nil
}
