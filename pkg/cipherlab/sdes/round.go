package sdes

import "fmt"

// Round applies one Feistel round (the f_K function) to an 8-bit block:
//
//	L, R  = block[:4], block[4:]
//	x     = EP(R) xor subkey
//	s     = S0(x[:4]) || S1(x[4:])
//	L'    = P4(s) xor L
//	out   = L' || R
//
// The right half passes through unchanged, which makes the round its own
// inverse for a fixed subkey. Only EP, P4, S0 and S1 of t are consulted.
func Round(block, subkey Bits, t *Tables) (Bits, error) {
	if t == nil {
		return nil, errNilTables()
	}
	if err := t.validateRound(); err != nil {
		return nil, err
	}
	if err := checkBits("block", block, BlockSize); err != nil {
		return nil, err
	}
	if err := checkBits("subkey", subkey, SubkeySize); err != nil {
		return nil, err
	}
	return round(block, subkey, t)
}

func round(block, subkey Bits, t *Tables) (Bits, error) {
	left, right := block[:HalfSize], block[HalfSize:]

	ep, err := Permute(right, t.EP)
	if err != nil {
		return nil, fmt.Errorf("EP: %w", err)
	}
	mixed, err := Xor(ep, subkey)
	if err != nil {
		return nil, err
	}

	s0, err := t.S0.Lookup(mixed[:HalfSize])
	if err != nil {
		return nil, fmt.Errorf("S0: %w", err)
	}
	s1, err := t.S1.Lookup(mixed[HalfSize:])
	if err != nil {
		return nil, fmt.Errorf("S1: %w", err)
	}

	p4, err := Permute(concat(s0, s1), t.P4)
	if err != nil {
		return nil, fmt.Errorf("P4: %w", err)
	}
	newLeft, err := Xor(p4, left)
	if err != nil {
		return nil, err
	}
	return concat(newLeft, right), nil
}
