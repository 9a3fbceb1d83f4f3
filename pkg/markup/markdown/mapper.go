package markdown

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/richview/pkg/content"
	"github.com/yaklabco/richview/pkg/embed"
	"github.com/yaklabco/richview/pkg/markup/html"
)

// mapper converts a goldmark AST into content nodes.
type mapper struct {
	source     []byte
	classifier *embed.Classifier
}

// newMapper creates a new mapper for the given source.
func newMapper(source []byte, classifier *embed.Classifier) *mapper {
	return &mapper{source: source, classifier: classifier}
}

// mapDocument converts a goldmark document into block nodes.
func (m *mapper) mapDocument(gmDoc ast.Node) []content.Node {
	return m.mapBlocks(gmDoc)
}

// mapBlocks maps the block children of a goldmark node. Lists and list
// items are flattened into their blocks.
func (m *mapper) mapBlocks(gmParent ast.Node) []content.Node {
	var blocks []content.Node
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		blocks = append(blocks, m.mapBlock(child)...)
	}
	return blocks
}

func (m *mapper) mapBlock(gmNode ast.Node) []content.Node {
	switch gmn := gmNode.(type) {
	case *ast.Heading:
		return []content.Node{{
			Kind:     content.KindHeading,
			Level:    gmn.Level,
			Children: m.mapInlines(gmn),
		}}

	case *ast.Paragraph, *ast.TextBlock:
		children := m.mapInlines(gmNode)
		if len(children) == 0 {
			return nil
		}
		return []content.Node{content.Paragraph(children...)}

	case *ast.Blockquote:
		return []content.Node{content.Wrap(content.KindQuote, m.mapBlocks(gmn)...)}

	case *ast.FencedCodeBlock:
		return []content.Node{{
			Kind:     content.KindCodeBlock,
			Text:     m.linesText(gmn.Lines()),
			Language: string(gmn.Language(m.source)),
		}}

	case *ast.CodeBlock:
		return []content.Node{{
			Kind: content.KindCodeBlock,
			Text: m.linesText(gmn.Lines()),
		}}

	case *ast.HTMLBlock:
		raw := m.linesText(gmn.Lines())
		if gmn.HasClosure() {
			raw += string(gmn.ClosureLine.Value(m.source))
		}
		nodes, err := html.ParseString(raw)
		if err != nil {
			return nil
		}
		return nodes

	case *ast.ThematicBreak:
		return nil

	case *ast.List, *ast.ListItem, *east.Table, *east.TableHeader, *east.TableRow:
		return m.mapBlocks(gmNode)

	case *east.TableCell:
		children := m.mapInlines(gmNode)
		if len(children) == 0 {
			return nil
		}
		return []content.Node{content.Paragraph(children...)}

	default:
		if gmNode.Type() == ast.TypeInline {
			return []content.Node{content.Paragraph(m.mapInline(gmNode)...)}
		}
		return m.mapBlocks(gmNode)
	}
}

// mapInlines maps the inline children of a goldmark node.
func (m *mapper) mapInlines(gmParent ast.Node) []content.Node {
	var nodes []content.Node
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		nodes = append(nodes, m.mapInline(child)...)
	}
	return nodes
}

func (m *mapper) mapInline(gmNode ast.Node) []content.Node {
	switch gmn := gmNode.(type) {
	case *ast.Text:
		return m.mapText(gmn)

	case *ast.String:
		return []content.Node{content.Text(string(gmn.Value))}

	case *ast.Emphasis:
		kind := content.KindEmphasis
		if gmn.Level == 2 {
			kind = content.KindStrong
		}
		return []content.Node{content.Wrap(kind, m.mapInlines(gmn)...)}

	case *east.Strikethrough:
		return []content.Node{content.Wrap(content.KindStrike, m.mapInlines(gmn)...)}

	case *ast.CodeSpan:
		return []content.Node{m.mapCodeSpan(gmn)}

	case *ast.Link:
		return []content.Node{content.Link(string(gmn.Destination), m.mapInlines(gmn)...)}

	case *ast.AutoLink:
		url := string(gmn.URL(m.source))
		return []content.Node{content.Link(url, content.Text(string(gmn.Label(m.source))))}

	case *ast.Image:
		return m.mapImage(gmn)

	case *ast.RawHTML:
		nodes, err := html.ParseInline(m.linesText(gmn.Segments))
		if err != nil {
			return nil
		}
		return nodes

	case *east.TaskCheckBox:
		if gmn.IsChecked {
			return []content.Node{content.Text("[x] ")}
		}
		return []content.Node{content.Text("[ ] ")}

	default:
		return m.mapInlines(gmNode)
	}
}

// mapText converts a goldmark Text node, turning soft breaks into spaces
// and hard breaks into break nodes.
func (m *mapper) mapText(textNode *ast.Text) []content.Node {
	nodes := []content.Node{content.Text(string(textNode.Segment.Value(m.source)))}

	switch {
	case textNode.HardLineBreak():
		nodes = append(nodes, content.Node{Kind: content.KindBreak})
	case textNode.SoftLineBreak():
		nodes = append(nodes, content.Text(" "))
	}
	return nodes
}

// mapCodeSpan converts a goldmark CodeSpan into a code node.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) content.Node {
	var buf bytes.Buffer
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(m.source))
		case *ast.String:
			buf.Write(c.Value)
		}
	}
	return content.Node{Kind: content.KindCode, Text: buf.String()}
}

// mapImage turns images of recognized media into embeds. Other images
// keep only their alt text.
func (m *mapper) mapImage(img *ast.Image) []content.Node {
	dest := string(img.Destination)
	alt := m.mapInlines(img)

	if _, ok := m.classifier.Classify(dest); ok {
		label := ""
		if len(alt) > 0 {
			label = content.PlainText(content.Wrap(content.KindText, alt...))
		}
		return []content.Node{{Kind: content.KindEmbed, URL: dest, Text: label}}
	}
	return alt
}

func (m *mapper) linesText(lines *text.Segments) string {
	var buf bytes.Buffer
	for i := range lines.Len() {
		segment := lines.At(i)
		buf.Write(segment.Value(m.source))
	}
	return buf.String()
}
