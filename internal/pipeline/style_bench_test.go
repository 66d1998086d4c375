//go:build bench

package pipeline

import (
	"context"
	"strings"
	"testing"
)

func BenchmarkHeadStyles(b *testing.B) {
	rows := strings.Repeat(`<tr><td>consulting</td><td class="amount">65,000.00</td></tr>`, 200)
	markup := "<html><head><title>INV</title></head><body><table>" + rows + "</table></body></html>"
	builtin := strings.Repeat(".invoice td { padding: 4px 8px; border-bottom: 1px solid #ddd; }\n", 50)
	ctx := context.Background()

	b.ReportAllocs()
	for b.Loop() {
		_ = HeadStyles{}.InjectStyles(ctx, markup, builtin, "td { color: teal; }")
	}
}
