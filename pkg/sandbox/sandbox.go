// Package sandbox provides disposable per-test directories.
//
// A Sandbox owns one directory below the system temp dir. Every path handed
// to it is confined to that directory, deletions retry on the transient
// EINVAL some file systems report under churn, and Destroy removes the tree
// and locks the instance.
//
//	sb, err := sandbox.New(sandbox.Options{Caller: "internal/app/app_test.go"})
//	if err != nil {
//	    return err
//	}
//	defer sb.Destroy()
//
//	_ = sb.CreateFile("config/app.json", map[string]any{"name": "test"})
//	hashes, _ := sb.GetAllFilesHash(ctx, "")
package sandbox

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/user/tempsandbox/pkg/adapters/globdelete"
	"github.com/user/tempsandbox/pkg/adapters/gomodule"
	"github.com/user/tempsandbox/pkg/adapters/logger"
	"github.com/user/tempsandbox/pkg/adapters/osfilesystem"
	"github.com/user/tempsandbox/pkg/confine"
	"github.com/user/tempsandbox/pkg/ports"
)

const maxRandomDirID = 10000

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Options configures New. Only Caller is required; nil adapters fall back
// to the os-backed implementations.
type Options struct {
	// Caller identifies the code owning the sandbox, usually the path of
	// the calling test file. Relative callers are taken from WorkDir.
	Caller string

	// WorkDir is the directory Caller is made relative to.
	// Defaults to the process working directory.
	WorkDir string

	// TempDir is the parent of all sandboxes.
	// Defaults to os.TempDir with symlinks resolved.
	TempDir string

	// RandomDir suffixes the directory with a random number instead of
	// "dir" so one caller can hold several sandboxes.
	RandomDir bool

	// Reuse keeps an existing directory instead of wiping it.
	Reuse bool

	// Retry overrides DefaultRetryPolicy.
	Retry *RetryPolicy

	FileSystem ports.FileSystem
	Deleter    ports.GlobDeleter
	Modules    ports.ModuleResolver
	Logger     ports.Logger
}

// Sandbox is a temporary directory confined to one caller.
//
// Operations must not be raced against Delete, Clean or Destroy on the same
// instance.
type Sandbox struct {
	root      confine.Root
	dir       string
	destroyed atomic.Bool

	fsys    ports.FileSystem
	deleter ports.GlobDeleter
	log     ports.Logger
	retry   RetryPolicy

	warnAbsolutePath sync.Once
	warnDeleteFile   sync.Once
}

// New creates the sandbox directory for opts.Caller, wiping any leftover
// directory from a previous run.
func New(opts Options) (*Sandbox, error) {
	if opts.Caller == "" {
		return nil, ErrNoCaller
	}

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = osfilesystem.New()
	}
	deleter := opts.Deleter
	if deleter == nil {
		deleter = globdelete.New(fsys)
	}
	modules := opts.Modules
	if modules == nil {
		modules = gomodule.New(fsys)
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewConsole(ports.LevelWarn)
	}
	retry := DefaultRetryPolicy()
	if opts.Retry != nil {
		retry = *opts.Retry
	}

	dir, err := sandboxDir(opts, modules)
	if err != nil {
		return nil, err
	}
	root, err := confine.New(dir)
	if err != nil {
		return nil, err
	}

	s := &Sandbox{
		root:    root,
		dir:     root.Dir(),
		fsys:    fsys,
		deleter: deleter,
		log:     log.WithComponent("sandbox"),
		retry:   retry,
	}

	if !opts.Reuse {
		exists, err := fsys.Exists(s.dir)
		if err != nil {
			return nil, err
		}
		if exists {
			s.log.Debug("Removing stale sandbox %s", s.dir)
			if _, err := deleter.Delete([]string{s.dir}, ports.DeleteOptions{Force: true, Literal: true}); err != nil {
				return nil, fmt.Errorf("remove stale sandbox: %w", err)
			}
		}
	}

	if err := fsys.MkdirAll(s.dir); err != nil {
		return nil, fmt.Errorf("create sandbox: %w", err)
	}
	s.log.Debug("Sandbox ready at %s", s.dir)
	return s, nil
}

// sandboxDir computes <temp>/<package>-sandbox/<caller>-<id>.
func sandboxDir(opts Options, modules ports.ModuleResolver) (string, error) {
	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		workDir = wd
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", err
	}

	caller := opts.Caller
	if !filepath.IsAbs(caller) {
		caller = filepath.Join(workDir, caller)
	}
	caller = filepath.Clean(caller)

	rel, err := filepath.Rel(workDir, caller)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrCallerOutside, opts.Caller)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))

	name, err := modules.ModuleName(filepath.Dir(caller))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrModuleNotFound, err)
	}
	if name == "" {
		return "", ErrModuleNotFound
	}
	packageID := unsafeChars.ReplaceAllString(name, "-")

	tempDir := opts.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
		if resolved, err := filepath.EvalSymlinks(tempDir); err == nil {
			tempDir = resolved
		}
	}

	dirID := "dir"
	if opts.RandomDir {
		dirID = strconv.Itoa(rand.IntN(maxRandomDirID) + 1)
	}

	return filepath.Join(tempDir, packageID+"-sandbox", rel+"-"+dirID), nil
}

// check is the guard every exported operation runs first.
func (s *Sandbox) check() error {
	if s.destroyed.Load() {
		return ErrDestroyed
	}
	return nil
}

// Dir returns the sandbox root, or "" once destroyed.
func (s *Sandbox) Dir() string {
	return s.dir
}

// Resolve returns the absolute path of p inside the sandbox. Paths that
// resolve outside of it fail with confine.ErrOutside.
func (s *Sandbox) Resolve(p string) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	return s.root.Resolve(p)
}

// Relative returns p relative to the sandbox root.
func (s *Sandbox) Relative(p string) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	return s.root.Relative(p)
}

// RelativeTo returns p relative to base, both confined to the sandbox.
func (s *Sandbox) RelativeTo(base, p string) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	return s.root.RelativeTo(base, p)
}

// AbsolutePath resolves p inside the sandbox.
//
// Deprecated: use Resolve.
func (s *Sandbox) AbsolutePath(p string) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	s.warnAbsolutePath.Do(func() {
		s.log.Warn("AbsolutePath has been deprecated. Use Resolve instead")
	})
	return s.Resolve(p)
}

// Destroy removes the sandbox directory and returns it. Every later call on
// s, Destroy included, fails with ErrDestroyed.
func (s *Sandbox) Destroy() ([]string, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	dir := s.root.Dir()
	if _, err := s.deleter.Delete([]string{dir}, ports.DeleteOptions{Force: true, Literal: true}); err != nil {
		return nil, fmt.Errorf("destroy sandbox: %w", err)
	}
	if !s.destroyed.CompareAndSwap(false, true) {
		return nil, ErrDestroyed
	}
	s.dir = ""

	s.log.Debug("Sandbox destroyed: %s", dir)
	return []string{dir}, nil
}
