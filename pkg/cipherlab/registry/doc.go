// Package registry maps cipher identifiers to their implementations.
//
// The set of ciphers is closed and fixed at compile time: Lookup switches
// over the known CipherID values and returns ErrUnknownCipher for anything
// else. Callers such as the HTTP API resolve a name once and then talk to the
// Cipher interface only.
package registry
