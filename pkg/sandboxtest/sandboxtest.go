// Package sandboxtest creates sandboxes scoped to a single test.
//
//	func TestBuild(t *testing.T) {
//	    sb := sandboxtest.New(t)
//	    if err := sb.CreateFile("package.json", manifest); err != nil {
//	        t.Fatal(err)
//	    }
//	    ...
//	}
package sandboxtest

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/user/tempsandbox/pkg/adapters/logger"
	"github.com/user/tempsandbox/pkg/ports"
	"github.com/user/tempsandbox/pkg/sandbox"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_/-]`)

type settings struct {
	opts  sandbox.Options
	level ports.LogLevel
}

// Option adjusts how New builds the sandbox.
type Option func(*settings)

// WithOptions replaces the defaults with opts. Caller, WorkDir and Logger
// are still filled in when left empty.
func WithOptions(opts sandbox.Options) Option {
	return func(s *settings) {
		s.opts = opts
	}
}

// WithLogLevel routes sandbox logs at level and above into t.Log.
// The default is ports.LevelWarn.
func WithLogLevel(level ports.LogLevel) Option {
	return func(s *settings) {
		s.level = level
	}
}

// New creates a sandbox named after t, relative to the working directory.
// The sandbox gets a random suffix so parallel tests never share a
// directory, and is destroyed when t finishes.
func New(t testing.TB, opts ...Option) *sandbox.Sandbox {
	t.Helper()

	s := settings{
		opts:  sandbox.Options{RandomDir: true},
		level: ports.LevelWarn,
	}
	for _, opt := range opts {
		opt(&s)
	}

	o := s.opts
	if o.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			t.Fatalf("sandboxtest: %v", err)
		}
		o.WorkDir = wd
	}
	if o.Caller == "" {
		o.Caller = filepath.Join(o.WorkDir, callerName(t.Name()))
	}
	if o.Logger == nil {
		o.Logger = logger.NewWriter(s.level, testWriter{t})
	}

	sb, err := sandbox.New(o)
	if err != nil {
		t.Fatalf("sandboxtest: %v", err)
	}
	t.Cleanup(func() {
		if sb.Dir() == "" {
			return
		}
		if _, err := sb.Destroy(); err != nil {
			t.Errorf("sandboxtest: %v", err)
		}
	})
	return sb
}

// callerName maps a test name to a relative path; subtests become nested
// directories.
func callerName(name string) string {
	name = unsafeNameChars.ReplaceAllString(name, "_")
	parts := strings.Split(name, "/")
	for i, p := range parts {
		if p == "" {
			parts[i] = "_"
		}
	}
	return filepath.Join(parts...)
}

// testWriter forwards log lines to t.Log.
type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
