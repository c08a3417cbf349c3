package domain

import "go.trai.ch/zerr"

var (
	// ErrBuildFailed is returned when at least one build task failed during a run.
	ErrBuildFailed = zerr.New("build failed")

	// ErrTaskFailed is returned when a single build task fails.
	ErrTaskFailed = zerr.New("task failed")

	// ErrGenerateFailed is returned when the generation step of a task fails.
	ErrGenerateFailed = zerr.New("generate step failed")

	// ErrCompileFailed is returned when the build step of a task fails.
	ErrCompileFailed = zerr.New("build step failed")

	// ErrTaskCanceled is recorded for tasks that never started because the run was interrupted.
	ErrTaskCanceled = zerr.New("task canceled before start")

	// ErrInvalidRecipe is returned when a recipe combines generation with sub-paths.
	ErrInvalidRecipe = zerr.New("invalid recipe, generate and subPaths are mutually exclusive")

	// ErrInvalidSubPath is returned when a recipe sub-path is empty or escapes the package root.
	ErrInvalidSubPath = zerr.New("invalid sub-path")

	// ErrMissingBuildCommand is returned when the toolchain has no build command.
	ErrMissingBuildCommand = zerr.New("toolchain build command is empty")

	// ErrInvalidConcurrency is returned when the configured concurrency is negative.
	ErrInvalidConcurrency = zerr.New("concurrency must be zero or positive")

	// ErrOutputPathOutsideRoot is returned when the output directory is outside the run root.
	ErrOutputPathOutsideRoot = zerr.New("output path is outside run root")

	// ErrEmptyTargetName is returned when a configured target name is empty.
	ErrEmptyTargetName = zerr.New("target name is empty")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrManifestReadFailed is returned when the package manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read package manifest")

	// ErrManifestParseFailed is returned when the package manifest is not valid JSON.
	ErrManifestParseFailed = zerr.New("failed to parse package manifest")

	// ErrOutputResetFailed is returned when the output directory cannot be recreated.
	ErrOutputResetFailed = zerr.New("failed to reset output directory")

	// ErrArtifactCopyFailed is returned when a prebuilt artifact cannot be copied.
	ErrArtifactCopyFailed = zerr.New("failed to copy prebuilt artifact")

	// ErrInvalidArtifactExt is returned when the artifact extension is empty or not a plain extension.
	ErrInvalidArtifactExt = zerr.New("artifact extension must start with a dot")

	// ErrStaleArtifactRemoveFailed is returned when a leftover artifact in the run root cannot be removed.
	ErrStaleArtifactRemoveFailed = zerr.New("failed to remove stale artifact")

	// ErrRelocationFailed is returned when produced artifacts cannot be moved into the output directory.
	ErrRelocationFailed = zerr.New("failed to relocate artifacts")

	// ErrFileHashFailed is returned when hashing an artifact fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrReportCreateFailed is returned when the report directory cannot be created.
	ErrReportCreateFailed = zerr.New("failed to create report directory")

	// ErrReportReadFailed is returned when the run report cannot be read.
	ErrReportReadFailed = zerr.New("failed to read run report")

	// ErrReportUnmarshalFailed is returned when the run report cannot be unmarshaled.
	ErrReportUnmarshalFailed = zerr.New("failed to unmarshal run report")

	// ErrReportMarshalFailed is returned when the run report cannot be marshaled.
	ErrReportMarshalFailed = zerr.New("failed to marshal run report")

	// ErrReportWriteFailed is returned when the run report cannot be written.
	ErrReportWriteFailed = zerr.New("failed to write run report")
)
