package mocks

import (
	"errors"

	"github.com/user/tempsandbox/pkg/ports"
)

// ModuleResolver is a mock implementation of ports.ModuleResolver that
// returns Name for every directory.
type ModuleResolver struct {
	Name string

	ModuleNameFunc func(dir string) (string, error)
}

// NewModuleResolver creates a resolver answering name.
func NewModuleResolver(name string) *ModuleResolver {
	return &ModuleResolver{Name: name}
}

func (m *ModuleResolver) ModuleName(dir string) (string, error) {
	if m.ModuleNameFunc != nil {
		return m.ModuleNameFunc(dir)
	}
	if m.Name == "" {
		return "", errors.New("no package descriptor")
	}
	return m.Name, nil
}

var _ ports.ModuleResolver = (*ModuleResolver)(nil)
