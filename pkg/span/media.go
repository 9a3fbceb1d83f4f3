package span

import "fmt"

// Compile-time interface checks.
var (
	_ Playable    = (*Video)(nil)
	_ Replacement = (*Video)(nil)
	_ Clickable   = (*YouTube)(nil)
	_ Replacement = (*YouTube)(nil)
)

// Default aspect ratio for inline media blocks.
const (
	AspectWidth  = 16
	AspectHeight = 9
)

// State is the lifecycle state of a view-bound span.
type State uint8

// Lifecycle states. A span moves Detached -> Attached when its view
// attaches, Attached -> Active while playing, and back to Detached when
// the view detaches or the document is replaced.
const (
	StateDetached State = iota
	StateAttached
	StateActive
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAttached:
		return "attached"
	case StateActive:
		return "active"
	default:
		return "detached"
	}
}

// AspectHeightFor returns the 16:9 height for width.
func AspectHeightFor(width int) int {
	if width <= 0 {
		return 0
	}
	return width * AspectHeight / AspectWidth
}

// Video is an inline media player. Touching it toggles playback.
type Video struct {
	URI string

	host   Host
	player Player
	state  State
}

// NewVideo creates a video span for uri.
func NewVideo(uri string) *Video {
	return &Video{URI: uri}
}

// Kind implements Span.
func (*Video) Kind() Kind { return KindVideo }

// State returns the lifecycle state.
func (v *Video) State() State { return v.state }

// Size implements Replacement. The block spans the available width at 16:9.
func (v *Video) Size(availableWidth int) (int, int) {
	if availableWidth <= 0 {
		return 0, 0
	}
	return availableWidth, AspectHeightFor(availableWidth)
}

// OnSpannedSet implements Span.
func (v *Video) OnSpannedSet(host Host) {
	v.host = host
}

// OnAttached implements Span.
func (v *Video) OnAttached(host Host) {
	v.host = host
	if v.state == StateDetached {
		v.state = StateAttached
	}
}

// OnDetached implements Span. The player is released.
func (v *Video) OnDetached(Host) {
	if v.player != nil {
		v.player.Pause()
		v.player.Release()
		v.player = nil
	}
	v.state = StateDetached
}

// Start implements Playable. It is a no-op unless the host is alive.
func (v *Video) Start() {
	if v.host == nil || !v.host.Alive() {
		return
	}
	if v.player == nil {
		v.player = v.host.NewPlayer(v.URI)
		if v.player == nil {
			return
		}
	}
	v.player.Play()
	v.state = StateActive
}

// Stop implements Playable.
func (v *Video) Stop() {
	if v.player != nil {
		v.player.Pause()
	}
	if v.state == StateActive {
		v.state = StateAttached
	}
}

// Running implements Playable.
func (v *Video) Running() bool {
	return v.player != nil && v.player.Playing()
}

// EncodePayload implements Span.
func (v *Video) EncodePayload(enc *Encoder) {
	enc.WriteString(v.URI)
}

// DecodePayload implements Span.
func (v *Video) DecodePayload(dec *Decoder) error {
	uri, err := dec.ReadString()
	if err != nil {
		return fmt.Errorf("video uri: %w", err)
	}
	v.URI = uri
	return nil
}

// YouTube is a YouTube embed rendered as its thumbnail. Activating it opens
// the watch page. The thumbnail is downloaded when the view attaches; until
// then the block is sized as a 16:9 placeholder.
type YouTube struct {
	ID string

	host      Host
	thumbnail Image
	pending   bool

	// generation invalidates downloads started before the last detach.
	generation uint64
}

// NewYouTube creates a YouTube span for a video id.
func NewYouTube(id string) *YouTube {
	return &YouTube{ID: id}
}

// Kind implements Span.
func (*YouTube) Kind() Kind { return KindYouTube }

// Target implements Clickable.
func (y *YouTube) Target() string {
	return "https://www.youtube.com/watch?v=" + y.ID
}

// ThumbnailURL returns the URL of the high quality thumbnail.
func (y *YouTube) ThumbnailURL() string {
	return "https://img.youtube.com/vi/" + y.ID + "/hqdefault.jpg"
}

// Loaded reports whether the thumbnail has arrived.
func (y *YouTube) Loaded() bool {
	return y.thumbnail.Width > 0 && y.thumbnail.Height > 0
}

// Size implements Replacement.
func (y *YouTube) Size(availableWidth int) (int, int) {
	if availableWidth <= 0 {
		return 0, 0
	}
	if !y.Loaded() {
		return availableWidth, AspectHeightFor(availableWidth)
	}
	return availableWidth, availableWidth * y.thumbnail.Height / y.thumbnail.Width
}

// OnSpannedSet implements Span.
func (y *YouTube) OnSpannedSet(host Host) {
	y.host = host
}

// OnAttached implements Span. It starts the thumbnail download once.
func (y *YouTube) OnAttached(host Host) {
	y.host = host
	if y.Loaded() || y.pending || host == nil {
		return
	}

	y.pending = true
	generation := y.generation
	host.Download(y.ThumbnailURL(), func(img Image) {
		y.thumbnailLoaded(generation, img)
	})
}

// OnDetached implements Span. Downloads still in flight are ignored.
func (y *YouTube) OnDetached(Host) {
	y.generation++
	y.pending = false
}

func (y *YouTube) thumbnailLoaded(generation uint64, img Image) {
	if generation != y.generation || y.host == nil || !y.host.Alive() {
		return
	}
	y.pending = false
	y.thumbnail = img
	y.host.ContentLoaded(y)
}

// EncodePayload implements Span.
func (y *YouTube) EncodePayload(enc *Encoder) {
	enc.WriteString(y.ID)
}

// DecodePayload implements Span.
func (y *YouTube) DecodePayload(dec *Decoder) error {
	id, err := dec.ReadString()
	if err != nil {
		return fmt.Errorf("youtube id: %w", err)
	}
	y.ID = id
	return nil
}
