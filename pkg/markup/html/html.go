// Package html converts HTML fragments into content nodes using
// golang.org/x/net/html.
package html

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/richview/pkg/content"
)

// Parse reads an HTML fragment and returns its block-level content nodes.
// Inline content outside any block element is wrapped in paragraphs.
func Parse(r io.Reader) ([]content.Node, error) {
	body := &nethtml.Node{Type: nethtml.ElementNode, Data: "body", DataAtom: atom.Body}
	roots, err := nethtml.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var blocks blockList
	for _, root := range roots {
		blocks.add(root)
	}
	return blocks.finish(), nil
}

// ParseString parses an HTML fragment held in a string.
func ParseString(s string) ([]content.Node, error) {
	return Parse(strings.NewReader(s))
}

// ParseInline parses an HTML fragment and returns the inline nodes of its
// blocks, for markup that embeds raw HTML inside a paragraph.
func ParseInline(s string) ([]content.Node, error) {
	blocks, err := ParseString(s)
	if err != nil {
		return nil, err
	}

	var inline []content.Node
	for _, block := range blocks {
		if block.Kind == content.KindParagraph {
			inline = append(inline, block.Children...)
			continue
		}
		inline = append(inline, block)
	}
	return inline, nil
}

// droppedTags are never rendered.
//
//nolint:gochecknoglobals // Read-only lookup table.
var droppedTags = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Head:     true,
	atom.Title:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// containerTags hold blocks and are flattened into their parent.
//
//nolint:gochecknoglobals // Read-only lookup table.
var containerTags = map[atom.Atom]bool{
	atom.Html:       true,
	atom.Body:       true,
	atom.Div:        true,
	atom.Section:    true,
	atom.Article:    true,
	atom.Main:       true,
	atom.Header:     true,
	atom.Footer:     true,
	atom.Aside:      true,
	atom.Nav:        true,
	atom.Figure:     true,
	atom.Ul:         true,
	atom.Ol:         true,
	atom.Li:         true,
	atom.Table:      true,
	atom.Tbody:      true,
	atom.Thead:      true,
	atom.Tr:         true,
	atom.Td:         true,
	atom.Th:         true,
	atom.Figcaption: true,
}

// blockList collects blocks, gathering loose inline content into an
// implicit paragraph.
type blockList struct {
	blocks []content.Node
	inline []content.Node
}

func (l *blockList) add(n *nethtml.Node) {
	switch n.Type {
	case nethtml.TextNode:
		l.inline = append(l.inline, inlineNodes(n, false)...)
		return
	case nethtml.ElementNode:
	default:
		return
	}

	if droppedTags[n.DataAtom] {
		return
	}

	switch {
	case containerTags[n.DataAtom]:
		l.flush()
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			l.add(child)
		}
		l.flush()
	case n.DataAtom == atom.P:
		l.flush()
		l.push(content.Paragraph(childInline(n, false)...))
	case headingLevel(n) > 0:
		l.flush()
		l.push(content.Node{
			Kind:     content.KindHeading,
			Level:    headingLevel(n),
			Children: trimInline(childInline(n, false)),
		})
	case n.DataAtom == atom.Blockquote:
		l.flush()
		var inner blockList
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			inner.add(child)
		}
		l.push(content.Wrap(content.KindQuote, inner.finish()...))
	case n.DataAtom == atom.Pre:
		l.flush()
		l.push(content.Node{
			Kind:     content.KindCodeBlock,
			Text:     textContent(n),
			Language: codeLanguage(n),
		})
	case n.DataAtom == atom.Hr:
		l.flush()
	default:
		l.inline = append(l.inline, inlineNodes(n, false)...)
	}
}

func (l *blockList) push(block content.Node) {
	if block.Kind == content.KindParagraph {
		block.Children = trimInline(block.Children)
		if len(block.Children) == 0 {
			return
		}
	}
	l.blocks = append(l.blocks, block)
}

func (l *blockList) flush() {
	if len(l.inline) == 0 {
		return
	}
	l.push(content.Paragraph(l.inline...))
	l.inline = nil
}

func (l *blockList) finish() []content.Node {
	l.flush()
	return l.blocks
}

// inlineNodes converts n to inline content nodes.
func inlineNodes(n *nethtml.Node, pre bool) []content.Node {
	switch n.Type {
	case nethtml.TextNode:
		text := n.Data
		if !pre {
			text = collapseSpace(text)
		}
		if text == "" {
			return nil
		}
		return []content.Node{content.Text(text)}
	case nethtml.ElementNode:
	default:
		return nil
	}

	if droppedTags[n.DataAtom] {
		return nil
	}

	switch n.DataAtom {
	case atom.A:
		href := attr(n, "href")
		children := childInline(n, pre)
		if href == "" {
			return children
		}
		return []content.Node{content.Link(href, children...)}
	case atom.B, atom.Strong:
		return wrapInline(content.KindStrong, childInline(n, pre))
	case atom.I, atom.Em:
		return wrapInline(content.KindEmphasis, childInline(n, pre))
	case atom.S, atom.Del, atom.Strike:
		return wrapInline(content.KindStrike, childInline(n, pre))
	case atom.Code, atom.Kbd, atom.Samp, atom.Tt:
		return []content.Node{{Kind: content.KindCode, Text: textContent(n), Language: codeLanguage(n)}}
	case atom.Br:
		return []content.Node{{Kind: content.KindBreak}}
	case atom.Iframe, atom.Embed:
		src := attr(n, "src")
		if src == "" {
			return nil
		}
		return []content.Node{{Kind: content.KindEmbed, URL: src, Text: attr(n, "title")}}
	case atom.Video, atom.Audio:
		src := mediaSource(n)
		if src == "" {
			return nil
		}
		return []content.Node{{Kind: content.KindVideo, URL: src}}
	case atom.Img:
		if alt := collapseSpace(attr(n, "alt")); alt != "" {
			return []content.Node{content.Text(alt)}
		}
		return nil
	default:
		return childInline(n, pre || n.DataAtom == atom.Pre)
	}
}

func childInline(n *nethtml.Node, pre bool) []content.Node {
	var out []content.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		out = append(out, inlineNodes(child, pre)...)
	}
	return out
}

func wrapInline(kind content.Kind, children []content.Node) []content.Node {
	if len(children) == 0 {
		return nil
	}
	return []content.Node{content.Wrap(kind, children...)}
}

// trimInline drops the leading and trailing whitespace of an inline run.
func trimInline(nodes []content.Node) []content.Node {
	for len(nodes) > 0 && nodes[0].Kind == content.KindText {
		nodes[0].Text = strings.TrimLeft(nodes[0].Text, " ")
		if nodes[0].Text != "" {
			break
		}
		nodes = nodes[1:]
	}
	for len(nodes) > 0 && nodes[len(nodes)-1].Kind == content.KindText {
		last := len(nodes) - 1
		nodes[last].Text = strings.TrimRight(nodes[last].Text, " ")
		if nodes[last].Text != "" {
			break
		}
		nodes = nodes[:last]
	}
	return nodes
}

func headingLevel(n *nethtml.Node) int {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level, err := strconv.Atoi(n.Data[1:])
		if err != nil {
			return 0
		}
		return level
	default:
		return 0
	}
}

// mediaSource returns the src of a media element or of its first source
// child.
func mediaSource(n *nethtml.Node) string {
	if src := attr(n, "src"); src != "" {
		return src
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.ElementNode && child.DataAtom == atom.Source {
			if src := attr(child, "src"); src != "" {
				return src
			}
		}
	}
	return ""
}

// codeLanguage returns the language class of a code element, looking into
// the first code child of a pre element.
func codeLanguage(n *nethtml.Node) string {
	for _, class := range strings.Fields(attr(n, "class")) {
		if strings.HasPrefix(class, "language-") || strings.HasPrefix(class, "lang-") {
			return class
		}
	}
	if n.DataAtom == atom.Pre {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == nethtml.ElementNode && child.DataAtom == atom.Code {
				return codeLanguage(child)
			}
		}
	}
	return ""
}

func attr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// textContent concatenates the text beneath n without collapsing spaces.
func textContent(n *nethtml.Node) string {
	var sb strings.Builder
	var walk func(*nethtml.Node)
	walk = func(node *nethtml.Node) {
		if node.Type == nethtml.TextNode {
			sb.WriteString(node.Data)
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

// collapseSpace replaces runs of HTML whitespace with one space.
func collapseSpace(s string) string {
	if s == "" {
		return ""
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}

	collapsed := strings.Join(fields, " ")
	if isSpace(s[0]) {
		collapsed = " " + collapsed
	}
	if isSpace(s[len(s)-1]) {
		collapsed += " "
	}
	return collapsed
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
