package sdes

import "fmt"

// Result is the output of one Encrypt or Decrypt call. The subkeys and the
// derived inverse permutation are returned alongside the block so callers can
// display or check them.
type Result struct {
	// Output is the ciphertext for Encrypt and the plaintext for Decrypt.
	Output    Bits
	K1        Bits
	K2        Bits
	IPInverse []int
}

// Encrypt transforms one 8-bit plaintext block under a 10-bit key.
//
// Tables are validated before any bit is processed; a malformed table aborts
// the call with a ConfigurationError and no partial result.
func Encrypt(plaintext, key Bits, t *Tables) (*Result, error) {
	return run("plaintext", plaintext, key, t, false)
}

// Decrypt inverts Encrypt for the same key and tables by applying the
// subkeys in reverse order.
func Decrypt(ciphertext, key Bits, t *Tables) (*Result, error) {
	return run("ciphertext", ciphertext, key, t, true)
}

// EncryptString parses plaintext (8 bits) and key (10 bits) from their
// '0'/'1' string forms and calls Encrypt.
func EncryptString(plaintext, key string, t *Tables) (*Result, error) {
	block, k, err := parseInputs("plaintext", plaintext, key)
	if err != nil {
		return nil, err
	}
	return Encrypt(block, k, t)
}

// DecryptString is the string form of Decrypt.
func DecryptString(ciphertext, key string, t *Tables) (*Result, error) {
	block, k, err := parseInputs("ciphertext", ciphertext, key)
	if err != nil {
		return nil, err
	}
	return Decrypt(block, k, t)
}

func parseInputs(blockField, block, key string) (Bits, Bits, error) {
	b, err := parseField(blockField, block, BlockSize)
	if err != nil {
		return nil, nil, err
	}
	k, err := parseField("key", key, KeySize)
	if err != nil {
		return nil, nil, err
	}
	return b, k, nil
}

func run(blockField string, block, key Bits, t *Tables, reverse bool) (*Result, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := checkBits(blockField, block, BlockSize); err != nil {
		return nil, err
	}
	if err := checkBits("key", key, KeySize); err != nil {
		return nil, err
	}

	ipInv, err := t.IPInverse()
	if err != nil {
		return nil, err
	}
	keys, err := generateSubkeys(key, t)
	if err != nil {
		return nil, fmt.Errorf("key schedule: %w", err)
	}

	first, second := keys.K1, keys.K2
	if reverse {
		first, second = second, first
	}
	out, err := crypt(block, first, second, ipInv, t)
	if err != nil {
		return nil, err
	}

	return &Result{
		Output:    out,
		K1:        keys.K1,
		K2:        keys.K2,
		IPInverse: ipInv,
	}, nil
}

// crypt is IP, round(first), swap, round(second), IP^-1. There is no swap
// after the second round.
func crypt(block, first, second Bits, ipInv []int, t *Tables) (Bits, error) {
	ip, err := Permute(block, t.IP)
	if err != nil {
		return nil, fmt.Errorf("IP: %w", err)
	}
	r1, err := round(ip, first, t)
	if err != nil {
		return nil, fmt.Errorf("round 1: %w", err)
	}
	r2, err := round(Swap(r1), second, t)
	if err != nil {
		return nil, fmt.Errorf("round 2: %w", err)
	}
	out, err := Permute(r2, ipInv)
	if err != nil {
		return nil, fmt.Errorf("IP inverse: %w", err)
	}
	return out, nil
}
