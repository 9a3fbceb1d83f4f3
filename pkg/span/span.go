// Package span defines the typed annotations that decorate a document's text.
//
// A Span carries only its kind and payload. Its position lives in the owning
// document, which is the single owner of every span it holds; views keep a
// non-owning Host handle that spans consult before any deferred mutation.
package span

// Kind classifies a span. Values below KindCustom are reserved for the
// built-in kinds; extensions pick values from KindCustom upward.
type Kind uint8

// Built-in span kinds.
const (
	KindStyle Kind = iota
	KindLink
	KindVideo
	KindUnsupported
	KindYouTube

	// KindCustom is the first kind available to extensions.
	KindCustom Kind = 128
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindStyle:
		return "style"
	case KindLink:
		return "link"
	case KindVideo:
		return "video"
	case KindUnsupported:
		return "unsupported"
	case KindYouTube:
		return "youtube"
	default:
		return "custom"
	}
}

// Span is an annotation over a range of document text.
type Span interface {
	// Kind identifies the variant.
	Kind() Kind

	// OnSpannedSet is called when the owning document is handed to a view.
	OnSpannedSet(host Host)

	// OnAttached is called when the view becomes visible.
	OnAttached(host Host)

	// OnDetached is called when the view is torn down or the document is
	// replaced. Pending callbacks must become no-ops afterwards.
	OnDetached(host Host)

	// EncodePayload writes the kind-specific fields in a fixed order.
	EncodePayload(enc *Encoder)

	// DecodePayload reads the fields written by EncodePayload.
	DecodePayload(dec *Decoder) error
}

// Clickable spans navigate somewhere when activated.
type Clickable interface {
	Span

	// Target returns the URL the span points at.
	Target() string
}

// Playable spans toggle between running and stopped instead of navigating.
type Playable interface {
	Span
	Start()
	Stop()
	Running() bool
}

// Replacement spans render as a single unbreakable inline block whose
// size is decided by the span rather than by its text.
type Replacement interface {
	Span

	// Size returns the block size for the given available content width.
	Size(availableWidth int) (width, height int)
}

// Image describes a downloaded bitmap. Only its dimensions matter here.
type Image struct {
	Width  int
	Height int
}

// Player is the playback collaborator bound to a media span.
type Player interface {
	Play()
	Pause()
	Playing() bool
	Release()
}

// Host is the non-owning handle a span holds back to the view displaying it.
type Host interface {
	// Alive reports whether the view is attached and still displays the
	// document that owns the span.
	Alive() bool

	// ContentWidth is the width available to content, padding excluded.
	ContentWidth() int

	// ContentLoaded tells the view that a span's asynchronous resource is
	// ready. Views ignore calls for spans they no longer own.
	ContentLoaded(s Span)

	// NewPlayer creates a playback collaborator for uri. It may return nil
	// when playback is not available.
	NewPlayer(uri string) Player

	// Download fetches the bitmap at url and calls done on the UI thread.
	Download(url string, done func(Image))
}

// Inert provides no-op lifecycle callbacks for spans that hold no
// view-bound state.
type Inert struct{}

// OnSpannedSet implements Span.
func (Inert) OnSpannedSet(Host) {}

// OnAttached implements Span.
func (Inert) OnAttached(Host) {}

// OnDetached implements Span.
func (Inert) OnDetached(Host) {}

// IsInteractive reports whether s reacts to touches.
func IsInteractive(s Span) bool {
	switch s.(type) {
	case Clickable, Playable:
		return true
	default:
		return false
	}
}
