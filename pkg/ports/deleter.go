package ports

// DeleteOptions controls a GlobDeleter call.
type DeleteOptions struct {
	// Cwd is the directory relative patterns are matched against.
	// It also bounds deletion unless Force is set.
	Cwd string

	// Dot makes wildcards match entries whose name starts with a dot.
	Dot bool

	// Force allows deleting Cwd itself and paths outside of it.
	Force bool

	// DryRun reports what would be removed without removing anything.
	DryRun bool

	// Literal treats patterns as plain paths instead of globs.
	Literal bool
}

// GlobDeleter removes every path matching a set of glob patterns.
type GlobDeleter interface {
	// Delete removes the matches of patterns and returns their absolute
	// paths in match order. "**" matches any number of directories.
	Delete(patterns []string, opts DeleteOptions) ([]string, error)
}
