package span

import (
	"errors"
	"fmt"
)

// Compile-time interface checks.
var (
	_ Clickable = (*Link)(nil)
	_ Clickable = (*Unsupported)(nil)
	_ Span      = (*Style)(nil)
)

// Link is a hyperlink that opens its URL when activated.
type Link struct {
	Inert

	URL string
}

// NewLink creates a link span.
func NewLink(url string) *Link {
	return &Link{URL: url}
}

// Kind implements Span.
func (*Link) Kind() Kind { return KindLink }

// Target implements Clickable.
func (l *Link) Target() string { return l.URL }

// EncodePayload implements Span.
func (l *Link) EncodePayload(enc *Encoder) {
	enc.WriteString(l.URL)
}

// DecodePayload implements Span.
func (l *Link) DecodePayload(dec *Decoder) error {
	url, err := dec.ReadString()
	if err != nil {
		return fmt.Errorf("link url: %w", err)
	}
	l.URL = url
	return nil
}

// Unsupported marks content that cannot be rendered inline. Activating it
// shows the original content in a fallback viewer.
type Unsupported struct {
	Inert

	URL string
}

// NewUnsupported creates a fallback span for url.
func NewUnsupported(url string) *Unsupported {
	return &Unsupported{URL: url}
}

// Kind implements Span.
func (*Unsupported) Kind() Kind { return KindUnsupported }

// Target implements Clickable.
func (u *Unsupported) Target() string { return u.URL }

// EncodePayload implements Span.
func (u *Unsupported) EncodePayload(enc *Encoder) {
	enc.WriteString(u.URL)
}

// DecodePayload implements Span.
func (u *Unsupported) DecodePayload(dec *Decoder) error {
	url, err := dec.ReadString()
	if err != nil {
		return fmt.Errorf("unsupported url: %w", err)
	}
	u.URL = url
	return nil
}

// TextStyle is the formatting applied by a Style span.
type TextStyle uint8

// Text styles.
const (
	StyleBold TextStyle = iota + 1
	StyleItalic
	StyleStrike
	StyleCode
	StyleHeading
	StyleQuote
)

// ErrUnknownStyle is returned when a decoded Style span names a text
// style this version does not know.
var ErrUnknownStyle = errors.New("unknown text style")

// String returns the style name.
func (s TextStyle) String() string {
	switch s {
	case StyleBold:
		return "bold"
	case StyleItalic:
		return "italic"
	case StyleStrike:
		return "strike"
	case StyleCode:
		return "code"
	case StyleHeading:
		return "heading"
	case StyleQuote:
		return "quote"
	default:
		return "plain"
	}
}

// Style is a non-interactive formatting span. Style spans routinely
// overlap interactive ones.
type Style struct {
	Inert

	Style TextStyle

	// Level is the heading level for StyleHeading.
	Level int

	// Language is the language of StyleCode content, if known.
	Language string
}

// NewStyle creates a formatting span.
func NewStyle(style TextStyle) *Style {
	return &Style{Style: style}
}

// Kind implements Span.
func (*Style) Kind() Kind { return KindStyle }

// EncodePayload implements Span.
func (s *Style) EncodePayload(enc *Encoder) {
	enc.WriteUvarint(uint64(s.Style))
	enc.WriteUvarint(uint64(s.Level))
	enc.WriteString(s.Language)
}

// DecodePayload implements Span.
func (s *Style) DecodePayload(dec *Decoder) error {
	style, err := dec.ReadUvarint()
	if err != nil {
		return fmt.Errorf("style: %w", err)
	}
	if style < uint64(StyleBold) || style > uint64(StyleQuote) {
		return fmt.Errorf("%w: %d", ErrUnknownStyle, style)
	}
	level, err := dec.ReadUvarint()
	if err != nil {
		return fmt.Errorf("style level: %w", err)
	}
	language, err := dec.ReadString()
	if err != nil {
		return fmt.Errorf("style language: %w", err)
	}
	s.Style = TextStyle(style)
	s.Level = int(level)
	s.Language = language
	return nil
}
