package mocks

import (
	"sync"

	"github.com/user/tempsandbox/pkg/ports"
)

// DeleteCall records one GlobDeleter.Delete invocation.
type DeleteCall struct {
	Patterns []string
	Options  ports.DeleteOptions
}

// GlobDeleter is a mock implementation of ports.GlobDeleter.
// Without DeleteFunc it echoes the patterns back as matches.
type GlobDeleter struct {
	mu    sync.Mutex
	calls []DeleteCall

	DeleteFunc func(patterns []string, opts ports.DeleteOptions) ([]string, error)
}

// NewGlobDeleter creates a new mock GlobDeleter.
func NewGlobDeleter() *GlobDeleter {
	return &GlobDeleter{}
}

func (m *GlobDeleter) Delete(patterns []string, opts ports.DeleteOptions) ([]string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, DeleteCall{
		Patterns: append([]string(nil), patterns...),
		Options:  opts,
	})
	m.mu.Unlock()

	if m.DeleteFunc != nil {
		return m.DeleteFunc(patterns, opts)
	}
	return append([]string(nil), patterns...), nil
}

// Calls returns every recorded invocation.
func (m *GlobDeleter) Calls() []DeleteCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]DeleteCall(nil), m.calls...)
}

// RemovalCalls returns the invocations that were not dry runs.
func (m *GlobDeleter) RemovalCalls() []DeleteCall {
	var out []DeleteCall
	for _, c := range m.Calls() {
		if !c.Options.DryRun {
			out = append(out, c)
		}
	}
	return out
}

var _ ports.GlobDeleter = (*GlobDeleter)(nil)
