package sdes

import (
	"errors"
	"strings"

	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab"
)

// Widths of the bit sequences used by the cipher.
const (
	KeySize    = 10
	BlockSize  = 8
	SubkeySize = 8
	HalfSize   = BlockSize / 2
)

// Bits is a sequence of binary digits stored one per element. Every element
// is 0 or 1.
type Bits []byte

// ParseBits converts a string of '0' and '1' characters into Bits. Any other
// character is a DomainError.
func ParseBits(s string) (Bits, error) {
	out := make(Bits, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			out[i] = 0
		case '1':
			out[i] = 1
		default:
			return nil, cipherlab.NewDomainError("bits", "invalid character %q at position %d", s[i], i+1)
		}
	}
	return out, nil
}

// MustParseBits is like ParseBits but panics on malformed input. It is meant
// for constants and tests.
func MustParseBits(s string) Bits {
	b, err := ParseBits(s)
	if err != nil {
		panic(err)
	}
	return b
}

// parseField parses s as exactly width bits, naming field in any error.
func parseField(field, s string, width int) (Bits, error) {
	if len(s) != width {
		return nil, cipherlab.NewDomainError(field, "expected %d bits, got %d", width, len(s))
	}
	b, err := ParseBits(s)
	if err != nil {
		var de *cipherlab.DomainError
		if errors.As(err, &de) {
			de.Field = field
		}
		return nil, err
	}
	return b, nil
}

// checkBits verifies b has the given width and only binary elements.
func checkBits(field string, b Bits, width int) error {
	if len(b) != width {
		return cipherlab.NewDomainError(field, "expected %d bits, got %d", width, len(b))
	}
	for i, v := range b {
		if v > 1 {
			return cipherlab.NewDomainError(field, "element %d is %d, not a bit", i+1, v)
		}
	}
	return nil
}

// String renders b as a string of '0' and '1' characters.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, v := range b {
		if v == 0 {
			sb.WriteByte('0')
		} else {
			sb.WriteByte('1')
		}
	}
	return sb.String()
}

// Equal reports whether b and o hold the same bits.
func (b Bits) Equal(o Bits) bool {
	if len(b) != len(o) {
		return false
	}
	for i := range b {
		if b[i] != o[i] {
			return false
		}
	}
	return true
}

// Uint returns the big-endian integer value of b. It is only meaningful for
// sequences of at most 64 bits.
func (b Bits) Uint() uint64 {
	var v uint64
	for _, bit := range b {
		v = v<<1 | uint64(bit&1)
	}
	return v
}

// concat returns a fresh slice holding a followed by b.
func concat(a, b Bits) Bits {
	out := make(Bits, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
