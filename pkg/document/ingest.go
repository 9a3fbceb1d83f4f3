package document

import (
	"strings"

	"mvdan.cc/xurls/v2"

	"github.com/yaklabco/richview/pkg/content"
	"github.com/yaklabco/richview/pkg/embed"
	"github.com/yaklabco/richview/pkg/langdetect"
	"github.com/yaklabco/richview/pkg/span"
)

// Block and line separators written between content nodes.
const (
	blockSeparator = "\n\n"
	lineSeparator  = "\n"
)

// IngestOptions controls how content nodes become text and spans.
type IngestOptions struct {
	// Classifier resolves embeds and, with ClassifyLinks, plain links.
	// A nil Classifier uses the default SoundCloud client id.
	Classifier *embed.Classifier

	// ClassifyLinks turns links to recognized media into media spans.
	ClassifyLinks bool

	// DetectLanguage fills in the language of code nodes that declare none.
	DetectLanguage bool

	// Linkify turns web addresses found in plain text into links. Text
	// already inside a link or code is left alone.
	Linkify bool
}

// bareURL matches web addresses with or without a scheme. Only matches
// accepted by linkTarget become links.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var bareURL = xurls.Relaxed()

// Ingest flattens nodes into a text buffer annotated with spans.
//
// Blocks are separated by a blank line and breaks by a newline. Media
// becomes a replacement span over a single ObjectReplacement character.
// Embeds that no recognizer accepts become Unsupported spans over their
// label.
func Ingest(nodes []content.Node, opts IngestOptions) Content {
	ing := &ingester{opts: opts}
	ing.nodes(nodes)
	return ing.b.Content()
}

type ingester struct {
	b    Builder
	opts IngestOptions

	// pendingBlock is set after a block closes so the next output starts
	// on a fresh paragraph.
	pendingBlock bool

	// inLink counts the enclosing labelled spans.
	inLink int
}

func (ing *ingester) nodes(nodes []content.Node) {
	for _, node := range nodes {
		ing.node(node)
	}
}

func (ing *ingester) node(node content.Node) {
	if node.Kind.IsBlock() {
		ing.block(node)
		return
	}

	switch node.Kind {
	case content.KindText:
		ing.text(node.Text)
	case content.KindBreak:
		ing.write(lineSeparator)
	case content.KindEmphasis:
		ing.styled(span.NewStyle(span.StyleItalic), node.Children)
	case content.KindStrong:
		ing.styled(span.NewStyle(span.StyleBold), node.Children)
	case content.KindStrike:
		ing.styled(span.NewStyle(span.StyleStrike), node.Children)
	case content.KindCode:
		ing.code(node)
	case content.KindLink:
		ing.link(node)
	case content.KindEmbed:
		ing.embed(node)
	case content.KindVideo:
		if node.URL == "" {
			return
		}
		ing.object(span.NewVideo(node.URL))
	default:
		ing.nodes(node.Children)
	}
}

func (ing *ingester) block(node content.Node) {
	ing.pendingBlock = ing.b.Len() > 0

	switch node.Kind {
	case content.KindHeading:
		style := span.NewStyle(span.StyleHeading)
		style.Level = node.Level
		ing.styled(style, node.Children)
	case content.KindQuote:
		ing.styled(span.NewStyle(span.StyleQuote), node.Children)
	case content.KindCodeBlock:
		node.Text = strings.TrimSuffix(node.Text, "\n")
		ing.code(node)
	default:
		ing.nodes(node.Children)
	}

	ing.pendingBlock = true
}

// text writes a run of plain text, linking bare web addresses when
// enabled.
func (ing *ingester) text(text string) {
	if !ing.opts.Linkify || ing.inLink > 0 {
		ing.write(text)
		return
	}

	last := 0
	for _, loc := range bareURL.FindAllStringIndex(text, -1) {
		label := text[loc[0]:loc[1]]
		target, ok := linkTarget(label)
		if !ok {
			continue
		}
		ing.write(text[last:loc[0]])
		ing.link(content.Node{Kind: content.KindLink, URL: target, Text: label})
		last = loc[1]
	}
	ing.write(text[last:])
}

// linkTarget returns the destination of an address found in text. Only
// addresses with a scheme or a "www." prefix qualify; the latter are
// given an https scheme.
func linkTarget(address string) (string, bool) {
	switch {
	case strings.Contains(address, "://"):
		return address, true
	case strings.HasPrefix(strings.ToLower(address), "www."):
		return "https://" + address, true
	default:
		return "", false
	}
}

// write appends text, emitting a pending block separator first.
func (ing *ingester) write(text string) {
	if text == "" {
		return
	}
	ing.flushBlock()
	ing.b.WriteString(text)
}

func (ing *ingester) flushBlock() {
	if !ing.pendingBlock {
		return
	}
	ing.pendingBlock = false
	if ing.b.Len() > 0 && !strings.HasSuffix(ing.b.String(), blockSeparator) {
		ing.b.WriteString(blockSeparator)
	}
}

func (ing *ingester) styled(s span.Span, children []content.Node) {
	ing.flushBlock()
	ing.b.Push(s)
	ing.nodes(children)
	ing.b.Pop()
}

func (ing *ingester) code(node content.Node) {
	text := node.Text
	if text == "" {
		text = content.PlainText(node)
	}

	style := span.NewStyle(span.StyleCode)
	style.Language = langdetect.FromInfo(node.Language)
	if style.Language == "" && ing.opts.DetectLanguage {
		style.Language = langdetect.Detect(text)
	}

	ing.flushBlock()
	ing.b.Push(style)
	ing.b.WriteString(text)
	ing.b.Pop()
}

func (ing *ingester) link(node content.Node) {
	if node.URL == "" {
		ing.nodes(node.Children)
		return
	}

	if ing.opts.ClassifyLinks {
		if ref, ok := ing.classify(node.URL); ok {
			if media := mediaSpan(ref); media != nil {
				ing.object(media)
				return
			}
			ing.labelled(span.NewLink(ref.URL), node)
			return
		}
	}

	ing.labelled(span.NewLink(node.URL), node)
}

func (ing *ingester) embed(node content.Node) {
	if node.URL == "" {
		return
	}

	ref, ok := ing.classify(node.URL)
	if !ok {
		ing.labelled(span.NewUnsupported(node.URL), node)
		return
	}
	if media := mediaSpan(ref); media != nil {
		ing.object(media)
		return
	}
	ing.labelled(span.NewLink(ref.URL), node)
}

// labelled writes the node's label, or its URL when it has none, under s.
func (ing *ingester) labelled(s span.Span, node content.Node) {
	ing.flushBlock()
	ing.b.Push(s)
	ing.inLink++
	defer func() { ing.inLink-- }()
	before := ing.b.Len()
	if len(node.Children) > 0 {
		ing.nodes(node.Children)
	} else {
		ing.write(node.Text)
	}
	if ing.b.Len() == before {
		ing.write(node.URL)
	}
	ing.b.Pop()
}

func (ing *ingester) object(s span.Span) {
	ing.flushBlock()
	ing.b.Object(s)
}

func (ing *ingester) classify(link string) (embed.Reference, bool) {
	if ing.opts.Classifier != nil {
		return ing.opts.Classifier.Classify(link)
	}
	return embed.Classify(link)
}

// mediaSpan returns the replacement span for a reference, or nil for
// references that stay plain links.
func mediaSpan(ref embed.Reference) span.Span {
	switch ref.Kind {
	case embed.KindYouTube:
		return span.NewYouTube(ref.ID)
	case embed.KindGfycat:
		return span.NewVideo(embed.GfycatVideoURL(ref.ID))
	case embed.KindSoundCloud:
		return span.NewVideo(ref.URL)
	default:
		return nil
	}
}
