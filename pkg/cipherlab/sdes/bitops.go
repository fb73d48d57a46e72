package sdes

import "github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab"

// Shift rotates bits left by n positions, returning bits[n:] followed by
// bits[:n]. n must be in [0, len(bits)].
func Shift(bits Bits, n int) (Bits, error) {
	if n < 0 || n > len(bits) {
		return nil, cipherlab.NewDomainError("shift", "amount %d outside [0, %d]", n, len(bits))
	}
	return concat(bits[n:], bits[:n]), nil
}

// Xor returns the bitwise exclusive or of a and b, which must have equal
// length.
func Xor(a, b Bits) (Bits, error) {
	if len(a) != len(b) {
		return nil, &cipherlab.LengthMismatchError{Left: len(a), Right: len(b)}
	}
	out := make(Bits, len(a))
	for i := range a {
		out[i] = (a[i] ^ b[i]) & 1
	}
	return out, nil
}

// Swap exchanges the two halves of an even-length sequence.
func Swap(bits Bits) Bits {
	half := len(bits) / 2
	return concat(bits[half:], bits[:half])
}
