//go:build unix

package sandbox

import (
	"errors"

	"golang.org/x/sys/unix"
)

// IsTransient reports whether err is the intermittent EINVAL seen while
// removing many files in quick succession.
func IsTransient(err error) bool {
	return errors.Is(err, unix.EINVAL)
}
