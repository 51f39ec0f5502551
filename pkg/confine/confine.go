// Package confine resolves caller-supplied paths against a root directory
// and rejects any path that would land outside of it.
package confine

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutside matches every *OutsideError.
var ErrOutside = errors.New("path is outside of sandbox")

// OutsideError reports a path that resolves outside of the root.
type OutsideError struct {
	Path string
	Root string
}

func (e *OutsideError) Error() string {
	return fmt.Sprintf("%s is outside of sandbox %s", e.Path, e.Root)
}

func (e *OutsideError) Is(target error) bool {
	return target == ErrOutside
}

// Root confines paths to a directory tree.
type Root struct {
	dir string
}

// New returns a Root for dir. dir is made absolute and cleaned.
func New(dir string) (Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Root{}, err
	}
	return Root{dir: abs}, nil
}

// Dir returns the root directory.
func (r Root) Dir() string {
	return r.dir
}

// Resolve returns the absolute form of p. Relative paths are joined onto
// the root; absolute paths are kept. Either way the result must be the
// root or one of its descendants.
func (r Root) Resolve(p string) (string, error) {
	var resolved string
	if filepath.IsAbs(p) {
		resolved = filepath.Clean(p)
	} else {
		resolved = filepath.Join(r.dir, p)
	}

	rel, err := filepath.Rel(r.dir, resolved)
	if err != nil || escapes(rel) {
		return "", &OutsideError{Path: p, Root: r.dir}
	}
	return resolved, nil
}

// Relative returns p relative to the root. The root itself yields ".".
func (r Root) Relative(p string) (string, error) {
	return r.RelativeTo("", p)
}

// RelativeTo returns p relative to base. Both are resolved against the
// root first and must be inside it.
func (r Root) RelativeTo(base, p string) (string, error) {
	from, err := r.Resolve(base)
	if err != nil {
		return "", err
	}
	to, err := r.Resolve(p)
	if err != nil {
		return "", err
	}
	return filepath.Rel(from, to)
}

// escapes reports whether a filepath.Rel result leaves its base.
func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
