package pipeline

import (
	"context"
	"testing"
)

func TestHeadStyles_InjectStyles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		sheets []string
		want   string
	}{
		{
			name:   "before closing head",
			markup: "<html><head><title>INV-1</title></head><body></body></html>",
			sheets: []string{"td{padding:4px}"},
			want:   "<html><head><title>INV-1</title><style>td{padding:4px}</style></head><body></body></html>",
		},
		{
			name:   "uppercase head",
			markup: "<HTML><HEAD></HEAD><BODY></BODY></HTML>",
			sheets: []string{"h1{margin:0}"},
			want:   "<HTML><HEAD><style>h1{margin:0}</style></HEAD><BODY></BODY></HTML>",
		},
		{
			name:   "after body tag with attributes",
			markup: `<body class="invoice"><h1>INV-1</h1></body>`,
			sheets: []string{"h1{color:navy}"},
			want:   `<body class="invoice"><style>h1{color:navy}</style><h1>INV-1</h1></body>`,
		},
		{
			name:   "unterminated body tag prepends",
			markup: "<body class=",
			sheets: []string{"p{}"},
			want:   "<style>p{}</style><body class=",
		},
		{
			name:   "fragment prepends",
			markup: "<table></table>",
			sheets: []string{"table{width:100%}"},
			want:   "<style>table{width:100%}</style><table></table>",
		},
		{
			name:   "sheets keep their order",
			markup: "<head></head>",
			sheets: []string{".a{}", ".b{}"},
			want:   "<head><style>.a{}</style><style>.b{}</style></head>",
		},
		{
			name:   "blank sheets skipped",
			markup: "<head></head>",
			sheets: []string{"", "  \n", ".total{}"},
			want:   "<head><style>.total{}</style></head>",
		},
		{
			name:   "nothing to insert",
			markup: "<head></head>",
			sheets: nil,
			want:   "<head></head>",
		},
		{
			name:   "closing sequences escaped",
			markup: "<head></head>",
			sheets: []string{"</style><script>x()</SCRIPT>"},
			want:   `<head><style><\/style><script>x()<\/SCRIPT></style></head>`,
		},
		{
			name:   "first head wins",
			markup: "<head></head><template><head></head></template>",
			sheets: []string{"i{}"},
			want:   "<head><style>i{}</style></head><template><head></head></template>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := HeadStyles{}.InjectStyles(context.Background(), tt.markup, tt.sheets...)
			if got != tt.want {
				t.Errorf("InjectStyles() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestHeadStyles_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	markup := "<head></head>"
	if got := (HeadStyles{}).InjectStyles(ctx, markup, "body{}"); got != markup {
		t.Errorf("InjectStyles() with cancelled context = %q, want markup unchanged", got)
	}
}

func TestInsertionPoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		markup string
		want   int
	}{
		{"", 0},
		{"plain", 0},
		{"<head></head>", len("<head>")},
		{"<body>", len("<body>")},
		{"<Body id=x>rest", len("<Body id=x>")},
	}

	for _, tt := range tests {
		if got := insertionPoint(tt.markup); got != tt.want {
			t.Errorf("insertionPoint(%q) = %d, want %d", tt.markup, got, tt.want)
		}
	}

	// Offsets refer to the original markup even when lowering it would change its length.
	m := "İİ</HEAD>"
	if got := insertionPoint(m); m[got:] != "</HEAD>" {
		t.Errorf("insertionPoint(%q) = %d, want split before </HEAD>", m, got)
	}
}
