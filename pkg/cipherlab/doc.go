// Package cipherlab is the root of a small teaching-cipher toolkit. The
// cipher engines live in subpackages (see sdes); this package holds the
// error taxonomy they share so callers can classify failures with errors.Is
// and errors.As without importing every engine.
package cipherlab
