//go:build !windows

package ui

import (
	"os"
)

// OpenTTY opens the controlling terminal, for when stdin is a pipe.
func OpenTTY() (*os.File, error) {
	return os.OpenFile("/dev/tty", os.O_RDWR, 0)
}
