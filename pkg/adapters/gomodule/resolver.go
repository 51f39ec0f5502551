// Package gomodule finds the Go module a directory belongs to.
package gomodule

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"

	"github.com/user/tempsandbox/pkg/ports"
)

// ErrNotFound is returned when no go.mod declaring a module path exists in
// the directory or any of its parents.
var ErrNotFound = errors.New("no go.mod found")

// Resolver implements ports.ModuleResolver by reading the nearest go.mod.
type Resolver struct {
	fsys ports.FileSystem
}

// New creates a Resolver that reads go.mod files through fsys.
func New(fsys ports.FileSystem) *Resolver {
	return &Resolver{fsys: fsys}
}

// ModuleName returns the module path declared by the nearest go.mod.
func (r *Resolver) ModuleName(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	start := dir

	for {
		data, err := r.fsys.ReadFile(filepath.Join(dir, "go.mod"))
		switch {
		case err == nil:
			if name := modfile.ModulePath(data); name != "" {
				return name, nil
			}
		case !errors.Is(err, os.ErrNotExist):
			return "", err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w above %s", ErrNotFound, start)
		}
		dir = parent
	}
}

var _ ports.ModuleResolver = (*Resolver)(nil)
