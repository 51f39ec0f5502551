package ports

// FileSystem abstracts the file system operations the sandbox consumes.
// Paths are absolute host paths; confinement happens before a FileSystem
// is ever called.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating or truncating it.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	// It succeeds if the directory already exists.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// RemoveAll deletes a path and any children, clearing read-only bits
	// when needed. It succeeds if the path does not exist.
	RemoveAll(path string) error

	// ListFiles returns every regular file below dir as slash-separated
	// paths relative to dir. The order is unspecified.
	ListFiles(dir string) ([]string, error)
}
