package sdes

import "fmt"

// Left-rotation amounts applied to each key half: LS-1 for K1, then a
// further LS-2 for K2.
const (
	firstShift  = 1
	secondShift = 2
)

// Subkeys holds the two 8-bit round keys derived from a 10-bit key.
type Subkeys struct {
	K1 Bits
	K2 Bits
}

// GenerateSubkeys runs the key schedule:
//
//	p10 = P10(key); split 5/5; LS-1 each half; K1 = P8(halves)
//	LS-2 each half again;                       K2 = P8(halves)
//
// Only P10 and P8 of t are consulted.
func GenerateSubkeys(key Bits, t *Tables) (Subkeys, error) {
	if t == nil {
		return Subkeys{}, errNilTables()
	}
	if err := t.validateKeySchedule(); err != nil {
		return Subkeys{}, err
	}
	if err := checkBits("key", key, KeySize); err != nil {
		return Subkeys{}, err
	}
	return generateSubkeys(key, t)
}

func generateSubkeys(key Bits, t *Tables) (Subkeys, error) {
	p10, err := Permute(key, t.P10)
	if err != nil {
		return Subkeys{}, fmt.Errorf("P10: %w", err)
	}
	left, right := p10[:KeySize/2], p10[KeySize/2:]

	if left, err = Shift(left, firstShift); err != nil {
		return Subkeys{}, err
	}
	if right, err = Shift(right, firstShift); err != nil {
		return Subkeys{}, err
	}
	k1, err := Permute(concat(left, right), t.P8)
	if err != nil {
		return Subkeys{}, fmt.Errorf("P8: %w", err)
	}

	if left, err = Shift(left, secondShift); err != nil {
		return Subkeys{}, err
	}
	if right, err = Shift(right, secondShift); err != nil {
		return Subkeys{}, err
	}
	k2, err := Permute(concat(left, right), t.P8)
	if err != nil {
		return Subkeys{}, fmt.Errorf("P8: %w", err)
	}

	return Subkeys{K1: k1, K2: k2}, nil
}
