package config

import "math"

type (
	Headers struct {
		// MaxLength limits the total size in bytes of a header block. The
		// trailer block of a chunked message is measured separately against
		// the same limit. A block of exactly MaxLength bytes is accepted.
		MaxLength int
	}

	Policy struct {
		// PermitMissingContentLength accepts requests whose method normally
		// requires a body (POST, PUT) even when neither Content-Length nor
		// chunked Transfer-Encoding is present. The request then completes
		// bodiless instead of failing.
		PermitMissingContentLength bool
	}
)

// Config holds the framer limits and leniency knobs. Always modify the
// values returned by Default() instead of constructing Config by hand, as
// zero limits reject any input at all.
type Config struct {
	Headers Headers
	Policy  Policy
}

// Default returns a well-balanced default config.
func Default() *Config {
	return &Config{
		Headers: Headers{
			MaxLength: 16 * 1024,
		},
	}
}

// Unbounded lifts the header length limit entirely. Mostly useful in tests.
func Unbounded() *Config {
	cfg := Default()
	cfg.Headers.MaxLength = math.MaxInt
	return cfg
}
