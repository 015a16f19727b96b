// Package logging builds the process-wide structured logger.
package logging

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// New returns a logger writing to stderr at the given level. Unknown level
// strings fall back to info; config validation rejects them before this is
// reached in normal operation.
func New(level string) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "labelsmith",
		Level:  lvl,
		Output: os.Stderr,
	})
}
