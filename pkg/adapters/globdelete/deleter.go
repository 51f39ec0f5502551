// Package globdelete removes files and directories matching glob patterns.
package globdelete

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/user/tempsandbox/pkg/ports"
)

var (
	// ErrDeleteCwd is returned when a match is the working directory itself
	// and Force is not set.
	ErrDeleteCwd = errors.New("cannot delete the current working directory")

	// ErrOutsideCwd is returned when a match lies outside the working
	// directory and Force is not set.
	ErrOutsideCwd = errors.New("cannot delete files/directories outside the current working directory")
)

// Deleter implements ports.GlobDeleter on top of a ports.FileSystem.
type Deleter struct {
	fsys ports.FileSystem
}

// New creates a Deleter that removes matches through fsys.
func New(fsys ports.FileSystem) *Deleter {
	return &Deleter{fsys: fsys}
}

// Delete removes every match of patterns and returns their absolute paths.
func (d *Deleter) Delete(patterns []string, opts ports.DeleteOptions) ([]string, error) {
	cwd := opts.Cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		cwd = wd
	}
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, err
	}

	var matches []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		found, err := d.match(pattern, cwd, opts)
		if err != nil {
			return nil, err
		}
		for _, m := range found {
			if seen[m] {
				continue
			}
			seen[m] = true
			matches = append(matches, m)
		}
	}

	if !opts.Force {
		realCwd, err := filepath.EvalSymlinks(cwd)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if err := guard(m, cwd, realCwd); err != nil {
				return nil, err
			}
		}
	}

	if opts.DryRun {
		return matches, nil
	}

	for _, m := range removalOrder(matches) {
		if err := d.fsys.RemoveAll(m); err != nil {
			return nil, err
		}
	}
	return matches, nil
}

func (d *Deleter) match(pattern, cwd string, opts ports.DeleteOptions) ([]string, error) {
	if opts.Literal {
		p := pattern
		if !filepath.IsAbs(p) {
			p = filepath.Join(cwd, p)
		}
		p = filepath.Clean(p)
		ok, err := d.fsys.Exists(p)
		if err != nil || !ok {
			return nil, err
		}
		return []string{p}, nil
	}

	base, glob := cwd, path.Clean(filepath.ToSlash(pattern))
	if filepath.IsAbs(pattern) || glob == ".." || strings.HasPrefix(glob, "../") {
		abs := pattern
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(cwd, abs)
		}
		var b string
		b, glob = doublestar.SplitPattern(filepath.ToSlash(filepath.Clean(abs)))
		base = filepath.FromSlash(b)
		if glob == "" {
			glob = "."
		}
	}

	if !doublestar.ValidatePattern(glob) {
		return nil, fmt.Errorf("%w: %s", doublestar.ErrBadPattern, pattern)
	}

	found, err := doublestar.Glob(os.DirFS(base), glob, doublestar.WithNoFollow())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(found)

	out := make([]string, 0, len(found))
	for _, f := range found {
		if !opts.Dot && hidden(f, glob) {
			continue
		}
		out = append(out, filepath.Join(base, filepath.FromSlash(f)))
	}
	return out, nil
}

// hidden reports whether a wildcard matched a dot entry the pattern did
// not name explicitly.
func hidden(match, glob string) bool {
	names := strings.Split(glob, "/")
	for i, seg := range strings.Split(match, "/") {
		if !strings.HasPrefix(seg, ".") || seg == "." {
			continue
		}
		if i < len(names) && strings.HasPrefix(names[i], ".") {
			continue
		}
		return true
	}
	return false
}

// guard rejects cwd itself and anything outside it. The parent of a match
// is also checked with symlinks resolved, so a match reached through a
// symlinked directory cannot escape cwd. The match itself may be a symlink;
// removing it only unlinks it.
func guard(match, cwd, realCwd string) error {
	rel, err := filepath.Rel(cwd, match)
	if err != nil {
		return err
	}
	if rel == "." {
		return fmt.Errorf("%w: %s", ErrDeleteCwd, match)
	}
	if escapes(rel) {
		return fmt.Errorf("%w: %s", ErrOutsideCwd, match)
	}

	parent, err := filepath.EvalSymlinks(filepath.Dir(match))
	if err != nil {
		return err
	}
	if rel, err := filepath.Rel(realCwd, parent); err != nil || escapes(rel) {
		return fmt.Errorf("%w: %s", ErrOutsideCwd, match)
	}
	return nil
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// removalOrder returns matches deepest first so children go before their
// parents.
func removalOrder(matches []string) []string {
	ordered := append([]string(nil), matches...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return depth(ordered[i]) > depth(ordered[j])
	})
	return ordered
}

func depth(p string) int {
	return strings.Count(p, string(filepath.Separator))
}

var _ ports.GlobDeleter = (*Deleter)(nil)
