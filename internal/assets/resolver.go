package assets

import "errors"

// AssetResolver consults loaders in order and returns the first asset found.
// Only a missing asset moves on to the next loader; invalid names and read
// failures are returned as is.
type AssetResolver struct {
	layers []AssetLoader
}

// NewAssetResolver layers customBasePath over the embedded assets.
// With an empty customBasePath only the embedded assets are used.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	if customBasePath == "" {
		return &AssetResolver{layers: []AssetLoader{NewEmbeddedLoader()}}, nil
	}
	custom, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	return &AssetResolver{layers: []AssetLoader{custom, NewEmbeddedLoader()}}, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.layers {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}
	return "", err
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
