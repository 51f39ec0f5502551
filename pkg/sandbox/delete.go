package sandbox

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/user/tempsandbox/pkg/adapters/globdelete"
	"github.com/user/tempsandbox/pkg/ports"
)

// Delete removes everything matching patterns and returns the removed
// paths, slash-separated and relative to the sandbox root. Patterns are globs relative to the
// root; "**" crosses directories and dot files match. Removal is retried on
// the transient EINVAL according to the retry policy.
func (s *Sandbox) Delete(ctx context.Context, patterns ...string) ([]string, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.delete(ctx, patterns)
}

// Clean removes the whole content of the sandbox but keeps its root.
func (s *Sandbox) Clean(ctx context.Context) ([]string, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.delete(ctx, []string{"**/*"})
}

// DeleteFile removes everything matching patterns.
//
// Deprecated: use Delete.
func (s *Sandbox) DeleteFile(ctx context.Context, patterns ...string) ([]string, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	s.warnDeleteFile.Do(func() {
		s.log.Warn("DeleteFile has been deprecated. Use Delete instead")
	})
	return s.delete(ctx, patterns)
}

func (s *Sandbox) delete(ctx context.Context, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	dir := s.root.Dir()
	confined := make([]string, 0, len(patterns))
	for _, p := range patterns {
		abs, err := s.root.Resolve(p)
		if err != nil {
			return nil, err
		}
		if abs == dir {
			return nil, fmt.Errorf("%w: %q is the sandbox root", ErrDeleteRoot, p)
		}
		rel, err := filepath.Rel(dir, abs)
		if err != nil {
			return nil, err
		}
		confined = append(confined, rel)
	}

	// Match first, then remove exactly those paths. A retry after a partial
	// removal still reports everything the patterns matched.
	targets, err := s.deleter.Delete(confined, ports.DeleteOptions{Cwd: dir, Dot: true, DryRun: true})
	if errors.Is(err, globdelete.ErrDeleteCwd) {
		return nil, fmt.Errorf("%w: %v", ErrDeleteRoot, err)
	}
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return []string{}, nil
	}
	for _, t := range targets {
		if abs, err := s.root.Resolve(t); err == nil && abs == dir {
			return nil, fmt.Errorf("%w: %q matches the sandbox root", ErrDeleteRoot, t)
		}
	}

	s.log.Debug("Deleting %d paths", len(targets))
	err = s.retry.do(ctx, s.log, func() error {
		_, err := s.deleter.Delete(targets, ports.DeleteOptions{Cwd: dir, Dot: true, Literal: true})
		return err
	})
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(targets))
	for _, t := range targets {
		rel, err := s.root.Relative(t)
		if err != nil {
			return nil, err
		}
		removed = append(removed, filepath.ToSlash(rel))
	}
	return removed, nil
}
