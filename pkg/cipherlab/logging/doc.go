// Package logging provides the small logging facade used by cipherlab.
//
// Logger wraps the context-aware half of log/slog so that the HTTP API and
// the command line binary can share one logger while tests substitute their
// own implementation or Discard.
//
//	logger := logging.New(nil) // binds to slog.Default()
//	logger.Info(ctx, "encrypt", "cipher", "sdes", logging.Redacted("key"))
//
// # Handlers
//
// NewHandler builds a text or JSON slog.Handler from the configuration
// strings accepted on the command line:
//
//	h, err := logging.NewHandler(os.Stderr, "json", "debug")
//	logger := logging.New(slog.New(h))
//
// # Key material
//
// Keys and subkeys are toy values, but the API treats them like real secrets:
// never pass them as attributes. Use Redacted to record that a value was
// present without logging it.
package logging
