package ports

// PackageLocator maps a target name to the directory it is built from.
//
//go:generate mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type PackageLocator interface {
	// Locate returns the package root of name. It never fails: when the
	// package cannot be resolved it returns <root>/<packagesDir>/<name>.
	Locate(root, packagesDir, name string) string
}
