package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError
	FileNotFoundError

	// Logging errors
	CreateLogFileError

	// Config errors
	ConfigLoadError
	ConfigNoCriteriaError

	// Source dataset errors
	SourceOpenError
	SourceUnsupportedSchemaError
	SourceQueryError
	SourceProtectedPathError
	SourcePathError

	// Route corpus errors
	RoutesReadError
	RoutesParseError

	// Selection errors
	SeedNotFoundError
	RadiusOriginNotFoundError
	RadiusNoPositionError

	// Closure errors
	ClosureIntegrityError

	// Materializer errors
	FixtureCreateError
	FixtureWriteError
	FixtureCommitError

	// Manifest errors
	ManifestReleaseMarkerError
	ManifestHashError
	ManifestCountError
	ManifestEncodeError
	ManifestDecodeError
	ManifestDriftError
)
