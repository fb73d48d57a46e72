package sdes

import (
	"fmt"

	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab"
)

// SBox is a 4x4 substitution table of 2-bit outputs. Cells hold values in
// [0, 3].
type SBox [4][4]uint8

// ParseSBox builds an SBox from a grid of 2-character bit strings, the form
// used by the JSON API. name is used in error messages.
func ParseSBox(name string, rows [][]string) (SBox, error) {
	var box SBox
	if len(rows) != 4 {
		return box, cipherlab.NewConfigurationError(name, "expected 4 rows, got %d", len(rows))
	}
	for r, row := range rows {
		if len(row) != 4 {
			return box, cipherlab.NewConfigurationError(name, "row %d: expected 4 columns, got %d", r, len(row))
		}
		for c, cell := range row {
			if len(cell) != 2 {
				return box, cipherlab.NewConfigurationError(name, "cell [%d][%d]: expected 2 bits, got %q", r, c, cell)
			}
			b, err := ParseBits(cell)
			if err != nil {
				return box, cipherlab.NewConfigurationError(name, "cell [%d][%d]: %q is not binary", r, c, cell)
			}
			box[r][c] = uint8(b.Uint())
		}
	}
	return box, nil
}

// Strings renders the box as a grid of 2-character bit strings.
func (s SBox) Strings() [][]string {
	out := make([][]string, 4)
	for r := range s {
		out[r] = make([]string, 4)
		for c, v := range s[r] {
			out[r][c] = fmt.Sprintf("%02b", v)
		}
	}
	return out
}

// validate checks every cell fits in two bits.
func (s SBox) validate(name string) error {
	for r := range s {
		for c, v := range s[r] {
			if v > 3 {
				return cipherlab.NewConfigurationError(name, "cell [%d][%d] is %d, outside [0, 3]", r, c, v)
			}
		}
	}
	return nil
}

// Index returns the row and column selected by a 4-bit input b0 b1 b2 b3:
// the row is the outer pair b0 b3, the column the inner pair b1 b2.
func (s SBox) Index(bits Bits) (row, col int, err error) {
	if err := checkBits("sbox input", bits, 4); err != nil {
		return 0, 0, err
	}
	row = int(bits[0])<<1 | int(bits[3])
	col = int(bits[1])<<1 | int(bits[2])
	return row, col, nil
}

// Lookup substitutes a 4-bit input with the 2-bit cell it selects.
func (s SBox) Lookup(bits Bits) (Bits, error) {
	row, col, err := s.Index(bits)
	if err != nil {
		return nil, err
	}
	v := s[row][col]
	return Bits{(v >> 1) & 1, v & 1}, nil
}
