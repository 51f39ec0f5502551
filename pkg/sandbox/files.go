package sandbox

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Hashes maps sandbox-relative file paths to their MD5 digests.
// Encoding it as JSON yields keys in lexicographic order.
type Hashes map[string]string

// Paths returns the keys of h in lexicographic order.
func (h Hashes) Paths() []string {
	return slices.Sorted(maps.Keys(h))
}

// CreateDir creates p and any missing parents. It succeeds if p already
// exists and returns p relative to the sandbox root.
func (s *Sandbox) CreateDir(p string) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	return s.createDir(p)
}

func (s *Sandbox) createDir(p string) (string, error) {
	abs, err := s.root.Resolve(p)
	if err != nil {
		return "", err
	}
	if err := s.fsys.MkdirAll(abs); err != nil {
		return "", err
	}
	return s.root.Relative(abs)
}

// CreateFile writes contents to p, creating parent directories first.
// nil and "" produce an empty file, strings and byte slices are written as
// is, anything else is encoded as indented JSON. Non-empty files always end
// with a newline.
func (s *Sandbox) CreateFile(p string, contents any) error {
	if err := s.check(); err != nil {
		return err
	}

	abs, err := s.root.Resolve(p)
	if err != nil {
		return err
	}
	if parent := filepath.Dir(abs); parent != s.root.Dir() {
		if _, err := s.createDir(parent); err != nil {
			return err
		}
	}

	data, err := encodeContents(contents)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p, err)
	}
	return s.fsys.WriteFile(abs, data)
}

// ReadFile reads p with trailing whitespace removed. Content that parses
// as JSON is returned decoded (map[string]any, []any, float64, ...),
// anything else as a string.
func (s *Sandbox) ReadFile(p string) (any, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	data, err := s.read(p)
	if err != nil {
		return nil, err
	}
	return decodeContents(data), nil
}

// ReadJSON decodes the JSON file p into v.
func (s *Sandbox) ReadJSON(p string, v any) error {
	if err := s.check(); err != nil {
		return err
	}
	data, err := s.read(p)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", p, err)
	}
	return nil
}

// GetFileHash returns the hex MD5 of the bytes stored at p.
func (s *Sandbox) GetFileHash(p string) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	return s.hash(p)
}

// GetFileList returns every regular file below subdir ("" for the root),
// as sorted slash-separated paths relative to subdir.
func (s *Sandbox) GetFileList(subdir string) ([]string, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.list(subdir)
}

// GetAllFilesHash hashes every file GetFileList reports for subdir. Files
// are hashed concurrently; the first error cancels the rest.
func (s *Sandbox) GetAllFilesHash(ctx context.Context, subdir string) (Hashes, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	dir, err := s.root.Resolve(subdir)
	if err != nil {
		return nil, err
	}
	files, err := s.list(subdir)
	if err != nil {
		return nil, err
	}
	s.log.Debug("Hashing %d files", len(files))

	var mu sync.Mutex
	hashes := make(Hashes, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sum, err := s.hash(filepath.Join(dir, file))
			if err != nil {
				return err
			}
			mu.Lock()
			hashes[file] = sum
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hashes, nil
}

func (s *Sandbox) read(p string) ([]byte, error) {
	abs, err := s.root.Resolve(p)
	if err != nil {
		return nil, err
	}
	return s.fsys.ReadFile(abs)
}

func (s *Sandbox) hash(p string) (string, error) {
	data, err := s.read(p)
	if err != nil {
		return "", err
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}

func (s *Sandbox) list(subdir string) ([]string, error) {
	dir, err := s.root.Resolve(subdir)
	if err != nil {
		return nil, err
	}
	files, err := s.fsys.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []string{}
	}
	sort.Strings(files)
	return files, nil
}
