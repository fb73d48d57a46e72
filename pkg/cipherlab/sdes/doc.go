// Package sdes implements Simplified DES, the two-round Feistel teaching
// cipher over 8-bit blocks and 10-bit keys.
//
// The construction is fully table driven. A Tables value carries the two key
// schedule permutations (P10, P8), the initial permutation (IP), the
// expansion permutation (EP), the post-substitution permutation (P4) and the
// two substitution boxes (S0, S1). DefaultTables returns the textbook values.
//
// # Pipeline
//
//	K1, K2 = GenerateSubkeys(key)              P10, LS-1, P8, LS-2, P8
//	x      = Permute(plaintext, IP)
//	x      = Swap(Round(x, K1))
//	x      = Round(x, K2)
//	c      = Permute(x, InverseTable(IP))
//
// Decrypt runs the same pipeline with the subkeys in reverse order.
//
// # Bits
//
// Bit sequences are represented as Bits, a byte slice holding one bit per
// element (0 or 1) in reading order, so "10111101" parses to
// Bits{1, 0, 1, 1, 1, 1, 0, 1}. Permutation tables are 1-indexed, matching
// the usual presentation of the cipher.
//
// # Concurrency
//
// Every function in this package is pure: inputs are never modified and no
// state survives a call. A Tables value may be shared between goroutines as
// long as nobody mutates it.
//
// # Security
//
// S-DES is a teaching cipher with a 10-bit key. It provides no security and
// must not be used to protect data.
package sdes
