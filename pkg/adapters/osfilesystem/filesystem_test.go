package osfilesystem

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFileSystem_WriteAndReadFile(t *testing.T) {
	fsys := New()
	tmpDir := t.TempDir()

	testPath := filepath.Join(tmpDir, "test.txt")
	testData := []byte("hello world")

	if err := fsys.WriteFile(testPath, testData); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fsys.ReadFile(testPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(data) != string(testData) {
		t.Errorf("expected %q, got %q", testData, data)
	}
}

func TestFileSystem_WriteFileRequiresParent(t *testing.T) {
	fsys := New()
	tmpDir := t.TempDir()

	err := fsys.WriteFile(filepath.Join(tmpDir, "missing", "test.txt"), []byte("x"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestFileSystem_MkdirAll(t *testing.T) {
	fsys := New()
	tmpDir := t.TempDir()

	testPath := filepath.Join(tmpDir, "a", "b", "c")
	if err := fsys.MkdirAll(testPath); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	// Second call is a no-op.
	if err := fsys.MkdirAll(testPath); err != nil {
		t.Fatalf("MkdirAll on existing dir failed: %v", err)
	}

	exists, err := fsys.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected directory to exist")
	}
}

func TestFileSystem_Exists(t *testing.T) {
	fsys := New()
	tmpDir := t.TempDir()

	testPath := filepath.Join(tmpDir, "test.txt")
	if err := os.WriteFile(testPath, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	exists, err := fsys.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}

	exists, err = fsys.Exists(filepath.Join(tmpDir, "nonexistent.txt"))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected file to not exist")
	}
}

func TestFileSystem_RemoveAll(t *testing.T) {
	fsys := New()
	tmpDir := t.TempDir()

	dir := filepath.Join(tmpDir, "a")
	if err := os.MkdirAll(filepath.Join(dir, "b"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b", "test.txt"), []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := fsys.RemoveAll(dir); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if exists, _ := fsys.Exists(dir); exists {
		t.Error("expected directory to be removed")
	}

	if err := fsys.RemoveAll(dir); err != nil {
		t.Errorf("RemoveAll on missing path failed: %v", err)
	}
}

func TestFileSystem_RemoveAllReadOnly(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}
	fsys := New()
	tmpDir := t.TempDir()

	dir := filepath.Join(tmpDir, "locked")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(dir, 0555); err != nil {
		t.Fatal(err)
	}

	if err := fsys.RemoveAll(dir); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if exists, _ := fsys.Exists(dir); exists {
		t.Error("expected directory to be removed")
	}
}

func TestFileSystem_ListFiles(t *testing.T) {
	fsys := New()
	tmpDir := t.TempDir()

	for _, name := range []string{"file1.js", "nested/file2.js", "a/b/c/file3.js", ".hidden"} {
		p := filepath.Join(tmpDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "empty"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := fsys.ListFiles(tmpDir)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	sort.Strings(files)

	want := []string{".hidden", "a/b/c/file3.js", "file1.js", "nested/file2.js"}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("ListFiles mismatch (-want +got):\n%s", diff)
	}
}

func TestFileSystem_ListFilesEmpty(t *testing.T) {
	files, err := New().ListFiles(t.TempDir())
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if files == nil || len(files) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", files)
	}
}
