package ports

// ModuleResolver looks up the package a directory belongs to.
type ModuleResolver interface {
	// ModuleName returns the declared name of the nearest package
	// descriptor found in dir or one of its parents.
	ModuleName(dir string) (string, error)
}
