//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// BenchmarkConvert benchmarks the default pipeline on typical documents.
func BenchmarkConvert(b *testing.B) {
	p, err := Default(Options{})
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	inputs := []struct {
		name    string
		content string
	}{
		{"minimal", "# Hello\n\nWorld"},
		{"paragraph", strings.Repeat("This is a paragraph with **some** text.\n\n", 10)},
		{"mixed_small", generateMixedMarkdown(10)},
		{"mixed_large", generateMixedMarkdown(200)},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := p.Convert(ctx, input.content, NewRecorder(true)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkConvertPathological benchmarks inputs made of one repeated
// marker, which must scale linearly.
func BenchmarkConvertPathological(b *testing.B) {
	p, err := Default(Options{})
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	for _, marker := range []string{"*", "[", "<", "`", "<!--\n\n"} {
		for _, n := range []int{1_000, 10_000, 100_000} {
			content := strings.Repeat(marker, n)
			b.Run(fmt.Sprintf("%q_%d", marker, n), func(b *testing.B) {
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := p.Convert(ctx, content, nil); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func generateMixedMarkdown(sections int) string {
	var sb strings.Builder
	for i := 0; i < sections; i++ {
		fmt.Fprintf(&sb, "## Section %d\n\n", i+1)
		sb.WriteString("Some *emphasis*, **strong** and `code` with a [link](https://example.com).\n\n")
		sb.WriteString("- item one\n- [ ] task\n1. ordered\n\n")
		sb.WriteString("> a quote\n\n")
		sb.WriteString("```go\nfunc main() {}\n```\n\n")
		sb.WriteString("| a | b |\n|---|---|\n| 1 | 2 |\n\n")
	}
	return sb.String()
}
