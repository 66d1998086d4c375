package assets

import (
	"fmt"
	"os"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads an HTML template by name using the default embedded loader.
// Returns ErrTemplateNotFound if the template does not exist.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// ReadTemplateFile reads an authored template from an arbitrary path.
// Unlike the loaders, the path is not confined to a base directory: the
// caller supplies it explicitly.
func ReadTemplateFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrTemplateNotFound)
	}
	content, err := os.ReadFile(path) // #nosec G304 -- caller-provided template path
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}
