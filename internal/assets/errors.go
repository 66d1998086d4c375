package assets

import "errors"

// Loader failures. Callers match them with errors.Is; the wrapped
// message carries the asset name or path involved.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName rejects names that are empty or would leave the
	// asset directory: separators, "..", null bytes.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath means a custom asset directory is missing or not a directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal means a custom asset resolved outside its directory,
	// typically through a symlink.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrAssetNotFound is raised by the embedder when a referenced image
	// cannot be read.
	ErrAssetNotFound = errors.New("asset not found")
)
