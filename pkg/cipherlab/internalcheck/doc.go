// Package internalcheck holds source-level policy tests for cipherlab.
//
// The tests load packages with golang.org/x/tools/go/packages and walk their
// syntax trees. They keep the cipher engine free of package state and I/O,
// and keep key material out of log calls. The package has no exported API.
package internalcheck
