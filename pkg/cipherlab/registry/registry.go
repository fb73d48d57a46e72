package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab/sdes"
)

// ErrUnknownCipher is returned for identifiers outside the registered set.
var ErrUnknownCipher = errors.New("unknown cipher")

// CipherID names a registered cipher.
type CipherID string

// Registered ciphers.
const (
	SDES CipherID = "sdes"
)

// IDs lists every registered cipher in a stable order.
func IDs() []CipherID {
	return []CipherID{SDES}
}

// ParseID normalizes s and checks it names a registered cipher.
func ParseID(s string) (CipherID, error) {
	id := CipherID(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range IDs() {
		if id == known {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCipher, s)
}

// Params carries the inputs for one operation. Input is the plaintext for
// Encrypt and the ciphertext for Decrypt, in the cipher's textual form.
type Params struct {
	Input string
	Key   string

	// SDES holds the S-DES tables. Nil selects sdes.DefaultTables().
	SDES *sdes.Tables
}

// Output is the result of one operation. Text is the transformed block; the
// cipher-specific section carries the intermediate values the cipher exposes.
type Output struct {
	Text string
	SDES *sdes.Result
}

// Cipher is implemented by every registered cipher.
type Cipher interface {
	ID() CipherID
	Encrypt(ctx context.Context, p Params) (*Output, error)
	Decrypt(ctx context.Context, p Params) (*Output, error)
}

// Lookup returns the implementation registered under id.
func Lookup(id CipherID) (Cipher, error) {
	switch id {
	case SDES:
		return sdesCipher{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCipher, string(id))
	}
}

type sdesCipher struct{}

func (sdesCipher) ID() CipherID { return SDES }

func (c sdesCipher) Encrypt(ctx context.Context, p Params) (*Output, error) {
	return c.do(ctx, p, sdes.EncryptString)
}

func (c sdesCipher) Decrypt(ctx context.Context, p Params) (*Output, error) {
	return c.do(ctx, p, sdes.DecryptString)
}

func (sdesCipher) do(ctx context.Context, p Params, fn func(string, string, *sdes.Tables) (*sdes.Result, error)) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tables := p.SDES
	if tables == nil {
		tables = sdes.DefaultTables()
	}
	res, err := fn(p.Input, p.Key, tables)
	if err != nil {
		return nil, err
	}
	return &Output{Text: res.Output.String(), SDES: res}, nil
}
