package pipeline

import (
	"context"
	"strings"
)

// StyleInjector places stylesheets into rendered markup.
type StyleInjector interface {
	InjectStyles(ctx context.Context, markup string, sheets ...string) string
}

// HeadStyles writes each non-empty stylesheet as its own <style> element,
// in order, so later sheets override earlier ones.
//
// The elements go before </head>. Documents without a head get them right
// after the opening <body> tag, and bare fragments get them prepended.
type HeadStyles struct{}

// styleCloser keeps sheet content from terminating its <style> element.
var styleCloser = strings.NewReplacer("</", `<\/`)

// InjectStyles returns markup with sheets inserted.
// Markup is returned unchanged when there is nothing to insert or ctx is done.
func (HeadStyles) InjectStyles(ctx context.Context, markup string, sheets ...string) string {
	if ctx.Err() != nil {
		return markup
	}

	var block strings.Builder
	for _, sheet := range sheets {
		if strings.TrimSpace(sheet) == "" {
			continue
		}
		block.WriteString("<style>")
		block.WriteString(styleCloser.Replace(sheet))
		block.WriteString("</style>")
	}
	if block.Len() == 0 {
		return markup
	}

	at := insertionPoint(markup)
	return markup[:at] + block.String() + markup[at:]
}

// insertionPoint finds where styles belong, matching tags case-insensitively.
func insertionPoint(markup string) int {
	if i := indexFold(markup, "</head>"); i >= 0 {
		return i
	}
	if i := indexFold(markup, "<body"); i >= 0 {
		if end := strings.IndexByte(markup[i:], '>'); end >= 0 {
			return i + end + 1
		}
	}
	return 0
}

// indexFold is strings.Index with ASCII case folding. Offsets refer to s
// itself, which lowering a copy would not guarantee for non-ASCII text.
func indexFold(s, tag string) int {
	for i := 0; i+len(tag) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(tag)], tag) {
			return i
		}
	}
	return -1
}
