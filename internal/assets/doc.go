// Package assets holds the built-in invoice template and stylesheet,
// loads replacements from disk, and turns signature images into data URLs.
//
// A custom asset directory mirrors the embedded layout:
//
//	{dir}/styles/{name}.css
//	{dir}/templates/{name}.html
//
// NewAssetResolver puts such a directory in front of the embedded assets;
// names it does not provide fall back to the built-in ones. Asset names are
// bare identifiers ("invoice", "default"); anything with a separator or a
// dot is rejected before any file is opened.
//
// EmbedImage reads an image and encodes it as a data URL. The media type
// comes from the extension, defaulting to DefaultImageType.
package assets
