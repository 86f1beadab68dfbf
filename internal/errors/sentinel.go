package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrConfiguration indicates required bundle locations or options are missing.
	ErrConfiguration = errors.New("configuration error")

	// ErrLocatorMiss indicates the bootstrap module was not found within the bundle.
	ErrLocatorMiss = errors.New("bootstrap module not found")

	// ErrManifestParse indicates an app.json document could not be parsed or
	// does not have the expected shape.
	ErrManifestParse = errors.New("manifest parse error")

	// ErrFilesystem indicates a read, write, copy or delete failed.
	ErrFilesystem = errors.New("filesystem error")

	// ErrBuild indicates an external build command exited unsuccessfully.
	ErrBuild = errors.New("build failed")

	// ErrValidation indicates a config file failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a bundle, page, or file was not found.
	ErrNotFound = errors.New("not found")
)
