package confine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newRoot(t *testing.T) Root {
	t.Helper()
	r, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r
}

func TestRoot_Resolve(t *testing.T) {
	r := newRoot(t)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"nested", "nested/path", filepath.Join(r.Dir(), "nested", "path")},
		{"dot", ".", r.Dir()},
		{"empty", "", r.Dir()},
		{"inner dotdot", "a/../b", filepath.Join(r.Dir(), "b")},
		{"dotdot prefix in name", "..foo", filepath.Join(r.Dir(), "..foo")},
		{"absolute inside", filepath.Join(r.Dir(), "nested", "path"), filepath.Join(r.Dir(), "nested", "path")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.path)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.path, got, tt.want)
			}
			if !strings.HasPrefix(got, r.Dir()) {
				t.Errorf("Resolve(%q) = %q is not under root", tt.path, got)
			}
		})
	}
}

func TestRoot_ResolveRejectsEscape(t *testing.T) {
	r := newRoot(t)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{"..", "../", "../outside", "a/../../outside", "a/b/../../../c", wd, filepath.Dir(r.Dir())} {
		_, err := r.Resolve(p)
		if !errors.Is(err, ErrOutside) {
			t.Errorf("Resolve(%q): expected ErrOutside, got %v", p, err)
			continue
		}
		var outside *OutsideError
		if !errors.As(err, &outside) || outside.Path != p {
			t.Errorf("Resolve(%q): error does not name the path: %v", p, err)
		}
	}
}

func TestRoot_Relative(t *testing.T) {
	r := newRoot(t)

	got, err := r.Relative(filepath.Join(r.Dir(), "nested", "path"))
	if err != nil {
		t.Fatalf("Relative failed: %v", err)
	}
	if got != filepath.FromSlash("nested/path") {
		t.Errorf("Relative = %q", got)
	}

	got, err = r.Relative(r.Dir())
	if err != nil {
		t.Fatalf("Relative(root) failed: %v", err)
	}
	if got != "." {
		t.Errorf("Relative(root) = %q, want \".\"", got)
	}

	got, err = r.Relative("test.js")
	if err != nil {
		t.Fatalf("Relative(test.js) failed: %v", err)
	}
	if got != "test.js" {
		t.Errorf("Relative(test.js) = %q", got)
	}
}

func TestRoot_RelativeTo(t *testing.T) {
	r := newRoot(t)

	got, err := r.RelativeTo("nested", filepath.Join(r.Dir(), "nested", "inside"))
	if err != nil {
		t.Fatalf("RelativeTo failed: %v", err)
	}
	if got != "inside" {
		t.Errorf("RelativeTo = %q, want inside", got)
	}
}

func TestRoot_RelativeRejectsOutside(t *testing.T) {
	r := newRoot(t)
	outside := filepath.Join(filepath.Dir(r.Dir()), "nested", "path")

	if _, err := r.Relative(outside); !errors.Is(err, ErrOutside) {
		t.Errorf("Relative: expected ErrOutside, got %v", err)
	}
	if _, err := r.RelativeTo(r.Dir(), outside); !errors.Is(err, ErrOutside) {
		t.Errorf("RelativeTo second arg: expected ErrOutside, got %v", err)
	}
	if _, err := r.RelativeTo("..", "file"); !errors.Is(err, ErrOutside) {
		t.Errorf("RelativeTo first arg: expected ErrOutside, got %v", err)
	}
}
