package hittest_test

import (
	"context"
	"strings"
	"testing"

	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/hittest"
	"github.com/yaklabco/richview/pkg/layout"
	"github.com/yaklabco/richview/pkg/markup/markdown"
)

// benchDocument builds a long document with a link in every paragraph and
// a video every tenth paragraph.
func benchDocument(b *testing.B) *document.Document {
	b.Helper()

	var source strings.Builder
	for i := range 200 {
		source.WriteString("Paragraph text that wraps across several lines of a narrow view, ")
		source.WriteString("with a [link](https://example.com/page) in the middle and more words after it.\n\n")
		if i%10 == 0 {
			source.WriteString("![clip](https://gfycat.com/HappyLittleCat)\n\n")
		}
	}

	nodes, err := markdown.New(markdown.FlavorGFM).Parse(context.Background(), []byte(source.String()))
	if err != nil {
		b.Fatal(err)
	}
	return document.FromContent(document.Ingest(nodes, document.IngestOptions{ClassifyLinks: true}))
}

// Benchmark a full layout pass.
func BenchmarkCompute(b *testing.B) {
	doc := benchDocument(b)
	style := layout.DefaultStyle()

	b.ResetTimer()
	for range b.N {
		if l := layout.Compute(doc, 60, style); l.LineCount() == 0 {
			b.Fail()
		}
	}
}

// Benchmark hit tests spread over the whole document.
func BenchmarkHitTest(b *testing.B) {
	doc := benchDocument(b)
	l := layout.Compute(doc, 60, layout.DefaultStyle())
	height := l.Height()

	b.ResetTimer()
	for i := range b.N {
		p := layout.Point{X: i % 60, Y: (i * 7) % height}
		if _, err := hittest.HitTest(l, doc, p); err != nil {
			b.Fatal(err)
		}
	}
}
