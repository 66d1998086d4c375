package assets

import "embed"

//go:embed styles templates
var builtin embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return styleKind.read(builtin, name)
}

func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return templateKind.read(builtin, name)
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
