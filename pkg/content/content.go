// Package content defines the typed content nodes that markup parsers emit
// and document ingestion consumes.
package content

// Kind classifies a content node.
type Kind uint8

// Node kinds.
const (
	KindText Kind = iota
	KindParagraph
	KindHeading
	KindEmphasis
	KindStrong
	KindStrike
	KindCode
	KindCodeBlock
	KindQuote
	KindLink
	KindEmbed
	KindVideo
	KindBreak
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindEmphasis:
		return "emphasis"
	case KindStrong:
		return "strong"
	case KindStrike:
		return "strike"
	case KindCode:
		return "code"
	case KindCodeBlock:
		return "code_block"
	case KindQuote:
		return "quote"
	case KindLink:
		return "link"
	case KindEmbed:
		return "embed"
	case KindVideo:
		return "video"
	case KindBreak:
		return "break"
	default:
		return "unknown"
	}
}

// IsBlock reports whether nodes of this kind start on their own line.
func (k Kind) IsBlock() bool {
	switch k {
	case KindParagraph, KindHeading, KindCodeBlock, KindQuote:
		return true
	default:
		return false
	}
}

// Node is one typed content element.
type Node struct {
	Kind Kind

	// Text is the literal text of KindText, KindCode and KindCodeBlock
	// nodes, and the optional label of KindEmbed and KindVideo nodes.
	Text string

	// URL is the destination of KindLink and the source of KindEmbed and
	// KindVideo nodes.
	URL string

	// Language is the info string of code nodes.
	Language string

	// Level is the heading level (1-6).
	Level int

	Children []Node
}

// Text creates a text node.
func Text(s string) Node {
	return Node{Kind: KindText, Text: s}
}

// Paragraph creates a paragraph holding children.
func Paragraph(children ...Node) Node {
	return Node{Kind: KindParagraph, Children: children}
}

// Link creates a link to url labelled by children.
func Link(url string, children ...Node) Node {
	return Node{Kind: KindLink, URL: url, Children: children}
}

// Embed creates an embedded media reference.
func Embed(url string) Node {
	return Node{Kind: KindEmbed, URL: url}
}

// Wrap creates a container node of kind holding children.
func Wrap(kind Kind, children ...Node) Node {
	return Node{Kind: kind, Children: children}
}

// PlainText concatenates the text of n and its descendants.
func PlainText(n Node) string {
	if len(n.Children) == 0 {
		return n.Text
	}
	var out []byte
	for _, child := range n.Children {
		out = append(out, PlainText(child)...)
	}
	return string(out)
}
