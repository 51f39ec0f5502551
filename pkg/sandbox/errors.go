package sandbox

import "errors"

var (
	// ErrDestroyed is returned by every operation once Destroy has run.
	ErrDestroyed = errors.New("sandbox has been destroyed. Create new instance")

	// ErrDeleteRoot is returned when Delete is asked to remove the root.
	ErrDeleteRoot = errors.New("use Sandbox.Destroy() to delete the sandbox")

	// ErrNoPatterns is returned when Delete is called without patterns.
	ErrNoPatterns = errors.New("delete requires at least one pattern")

	// ErrNoCaller is returned by New when Options.Caller is empty.
	ErrNoCaller = errors.New("caller is required")

	// ErrCallerOutside is returned by New when the caller does not name a
	// path below the work dir.
	ErrCallerOutside = errors.New("caller is not below the work dir")

	// ErrModuleNotFound is returned by New when the caller's package name
	// cannot be determined.
	ErrModuleNotFound = errors.New("package name not found")
)
