package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// AssetLoader loads the stylesheet and template used to render invoices.
type AssetLoader interface {
	// LoadStyle returns styles/{name}.css, or ErrStyleNotFound.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns templates/{name}.html, or ErrTemplateNotFound.
	LoadTemplate(name string) (string, error)
}

// DefaultTemplateName is the name of the built-in invoice template.
const DefaultTemplateName = "invoice"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// kind describes where one family of assets lives.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// file returns the slash-separated path of name within a loader root.
func (k kind) file(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	return path.Join(k.dir, name+k.ext), nil
}

// read loads name from fsys, mapping a missing file to the kind's sentinel.
func (k kind) read(fsys fs.FS, name string) (string, error) {
	file, err := k.file(name)
	if err != nil {
		return "", err
	}
	content, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", k.notFound, name)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// ValidateAssetName rejects names that could leave the asset directory or
// change the extension: empty names, separators, and dots.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
