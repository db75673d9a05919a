//go:build !release

package logging

import "github.com/rs/zerolog"

// Enabled reports whether this build carries the diagnostic sink.
const Enabled = true

// New returns a console logger at the requested level.
func New(level, version string) zerolog.Logger {
	return newLogger(consoleWriter(), ParseLevel(level), version)
}
