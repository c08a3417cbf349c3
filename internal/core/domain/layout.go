package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the build configuration file.
	ConfigFileName = "tsbuild.yaml"

	// StateDirName is the name of the internal state directory under the run root.
	StateDirName = ".tsbuild"

	// ReportFileName is the name of the persisted run report.
	ReportFileName = "last-run.json"

	// DefaultOutDirName is the output directory, relative to the run root.
	DefaultOutDirName = "out"

	// DefaultPackagesDirName is the directory that holds installed packages.
	DefaultPackagesDirName = "node_modules"

	// DefaultManifestName is the package manifest scanned for grammar names.
	DefaultManifestName = "package.json"

	// DefaultArtifactExt is the extension of compiled grammar artifacts.
	DefaultArtifactExt = ".wasm"

	// DirPlaceholder is replaced with the task directory in toolchain commands.
	DirPlaceholder = "{dir}"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultReportPath returns the report path relative to the run root.
// It joins .tsbuild and last-run.json.
func DefaultReportPath() string {
	return filepath.Join(StateDirName, ReportFileName)
}
