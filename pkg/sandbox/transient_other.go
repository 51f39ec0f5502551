//go:build !unix

package sandbox

import (
	"errors"
	"syscall"
)

// IsTransient reports whether err is the intermittent EINVAL seen while
// removing many files in quick succession.
func IsTransient(err error) bool {
	return errors.Is(err, syscall.EINVAL)
}
