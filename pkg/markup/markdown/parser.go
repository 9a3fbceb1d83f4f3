// Package markdown converts Markdown into content nodes using goldmark.
package markdown

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/richview/pkg/content"
	"github.com/yaklabco/richview/pkg/embed"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser converts Markdown source into content nodes.
type Parser struct {
	flavor     string
	md         goldmark.Markdown
	classifier *embed.Classifier
}

// Option configures a Parser.
type Option func(*Parser)

// WithClassifier sets the classifier used to recognize media images.
func WithClassifier(c *embed.Classifier) Option {
	return func(p *Parser) {
		p.classifier = c
	}
}

// New creates a goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string, opts ...Option) *Parser {
	f := flavorOrDefault(flavor)
	p := &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts Markdown source into block-level content nodes.
// Raw HTML is handed to the html adapter so embedded iframes and videos
// survive. Images pointing at recognized media become embeds.
func (p *Parser) Parse(ctx context.Context, source []byte) ([]content.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	reader := text.NewReader(source)
	gmDoc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	m := newMapper(source, p.classifier)
	return m.mapDocument(gmDoc), nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts,
			goldmark.WithExtensions(
				extension.GFM,
			),
		)
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}
