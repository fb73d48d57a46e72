package cipherlab

// Version is populated at build time via
// -ldflags "-X github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab.Version=...".
var Version = "v0.0.0-in-progress"

// BuildVersion returns Version, the value reported by the HTTP API and the
// command line binary.
func BuildVersion() string {
	return Version
}
