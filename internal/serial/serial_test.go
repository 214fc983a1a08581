package serial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatExactStrings(t *testing.T) {
	in := Input{
		OperatorCode: "07",
		MachineCode:  "M2",
		Timestamp:    time.Date(2025, 1, 4, 9, 15, 0, 0, time.Local),
		OperatorSeq:  3,
		GlobalSeq:    152,
		ProductCode:  "2770",
		ProductSeq:   44,
		Quantity:     1.25,
	}
	serial, payload, err := Format(in)
	require.NoError(t, err)
	assert.Equal(t, "07-M2-040125-00003-0915", serial)
	assert.Equal(t, "00000152:2770:000044:1.25", payload)

	// Identical inputs must yield byte-identical output.
	serial2, payload2, err := Format(in)
	require.NoError(t, err)
	assert.Equal(t, serial, serial2)
	assert.Equal(t, payload, payload2)
}

func TestFormatDefaults(t *testing.T) {
	in := Input{
		Timestamp:   time.Date(2025, 12, 31, 23, 59, 0, 0, time.Local),
		OperatorSeq: 1,
		GlobalSeq:   1,
		ProductCode: "A1",
		ProductSeq:  1,
		Quantity:    0.5,
	}
	serial, payload, err := Format(in)
	require.NoError(t, err)
	assert.Equal(t, "00-M1-311225-00001-2359", serial)
	assert.Equal(t, "00000001:A1:000001:0.50", payload)
}

func TestFormatRejectsNonPositiveSequences(t *testing.T) {
	base := Input{
		Timestamp:   time.Now(),
		OperatorSeq: 1,
		GlobalSeq:   1,
		ProductCode: "X",
		ProductSeq:  1,
		Quantity:    1,
	}
	cases := []struct {
		name   string
		mutate func(*Input)
	}{
		{"zero operator seq", func(in *Input) { in.OperatorSeq = 0 }},
		{"negative operator seq", func(in *Input) { in.OperatorSeq = -3 }},
		{"zero global seq", func(in *Input) { in.GlobalSeq = 0 }},
		{"negative global seq", func(in *Input) { in.GlobalSeq = -1 }},
		{"zero product seq", func(in *Input) { in.ProductSeq = 0 }},
		{"negative product seq", func(in *Input) { in.ProductSeq = -44 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			serial, payload, err := Format(in)
			assert.ErrorIs(t, err, ErrInvalidSequence)
			assert.Empty(t, serial)
			assert.Empty(t, payload)
		})
	}
}

func TestFormatQuantityTwoDecimals(t *testing.T) {
	in := Input{
		Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local),
		OperatorSeq: 10,
		GlobalSeq:   99999999,
		ProductCode: "P",
		ProductSeq:  999999,
		Quantity:    12.345,
	}
	_, payload, err := Format(in)
	require.NoError(t, err)
	assert.Equal(t, "99999999:P:999999:12.35", payload) // rounded, not truncated
}
