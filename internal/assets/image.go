package assets

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultImageType is used for extensions missing from imageTypes.
const DefaultImageType = "image/png"

// imageTypes maps lowercase file extensions to media types.
var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".jfif": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".bmp":  "image/bmp",
	".ico":  "image/x-icon",
	".avif": "image/avif",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// ImageType returns the media type for path based on its extension.
// Unknown or missing extensions yield DefaultImageType.
func ImageType(path string) string {
	if t, ok := imageTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	return DefaultImageType
}

// EmbedImage reads an image file and returns it as a base64 data URL,
// so the rendered document does not reference the local filesystem.
// Returns ErrAssetNotFound if the file cannot be read.
func EmbedImage(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrAssetNotFound)
	}

	content, err := os.ReadFile(path) // #nosec G304 -- caller-provided image path
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrAssetNotFound, path, err)
	}

	return EncodeDataURL(ImageType(path), content), nil
}

// EncodeDataURL builds a data URL from a media type and raw bytes.
func EncodeDataURL(mediaType string, content []byte) string {
	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mediaType) + base64.StdEncoding.EncodedLen(len(content)))
	b.WriteString("data:")
	b.WriteString(mediaType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(content))
	return b.String()
}
