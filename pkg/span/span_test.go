package span_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richview/pkg/span"
)

// fakePlayer records playback calls.
type fakePlayer struct {
	playing  bool
	released bool
}

func (p *fakePlayer) Play()         { p.playing = true }
func (p *fakePlayer) Pause()        { p.playing = false }
func (p *fakePlayer) Playing() bool { return p.playing }
func (p *fakePlayer) Release()      { p.released = true }

// fakeHost is a controllable span.Host.
type fakeHost struct {
	alive     bool
	width     int
	players   []*fakePlayer
	downloads []func(span.Image)
	loaded    []span.Span
}

func (h *fakeHost) Alive() bool              { return h.alive }
func (h *fakeHost) ContentWidth() int        { return h.width }
func (h *fakeHost) ContentLoaded(s span.Span) { h.loaded = append(h.loaded, s) }

func (h *fakeHost) NewPlayer(string) span.Player {
	player := &fakePlayer{}
	h.players = append(h.players, player)
	return player
}

func (h *fakeHost) Download(_ string, done func(span.Image)) {
	h.downloads = append(h.downloads, done)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	reg := span.Builtin()

	tests := []struct {
		name string
		span span.Span
	}{
		{"link", span.NewLink("https://example.com/a?b=c")},
		{"video", span.NewVideo("https://giant.gfycat.com/Cat.mp4")},
		{"unsupported", span.NewUnsupported("https://vimeo.com/1")},
		{"youtube", span.NewYouTube("dQw4w9WgXcQ")},
		{"style", &span.Style{Style: span.StyleCode, Language: "go"}},
		{"heading", &span.Style{Style: span.StyleHeading, Level: 2}},
		{"empty link", span.NewLink("")},
		{"unicode", span.NewLink("https://例え.jp/パス")},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			data, err := reg.Marshal(testCase.span)
			require.NoError(t, err)

			got, err := reg.Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, testCase.span.Kind(), got.Kind())
			assert.Equal(t, testCase.span, got)
		})
	}
}

func TestMarshal_TagFirst(t *testing.T) {
	t.Parallel()

	data, err := span.Builtin().Marshal(span.NewVideo("v"))
	require.NoError(t, err)
	assert.Equal(t, []byte{byte(span.TagVideo), 1, 'v'}, data)
}

func TestUnmarshal_Errors(t *testing.T) {
	t.Parallel()

	reg := span.Builtin()

	_, err := reg.Unmarshal(nil)
	require.ErrorIs(t, err, span.ErrTruncated)

	_, err = reg.Unmarshal([]byte{99})
	require.ErrorIs(t, err, span.ErrUnknownTag)

	_, err = reg.Unmarshal([]byte{byte(span.TagLink), 5, 'a'})
	require.ErrorIs(t, err, span.ErrTruncated)

	_, err = reg.Unmarshal([]byte{byte(span.TagLink), 1, 'a', 'b'})
	require.ErrorIs(t, err, span.ErrTrailingData)

	_, err = reg.Unmarshal([]byte{byte(span.TagLink), 1, 0xff})
	require.ErrorIs(t, err, span.ErrInvalidString)
}

// custom is an extension kind registered by a client.
type custom struct {
	span.Inert

	Count uint64
}

func (*custom) Kind() span.Kind                    { return span.KindCustom }
func (c *custom) EncodePayload(enc *span.Encoder) { enc.WriteUvarint(c.Count) }

func (c *custom) DecodePayload(dec *span.Decoder) error {
	count, err := dec.ReadUvarint()
	c.Count = count
	return err
}

func TestRegistry_CustomKind(t *testing.T) {
	t.Parallel()

	reg := span.NewRegistry()
	_, err := reg.Marshal(&custom{Count: 3})
	require.ErrorIs(t, err, span.ErrUnregisteredKind)

	require.NoError(t, reg.Register(200, span.KindCustom, func() span.Span { return &custom{} }))
	require.ErrorIs(t, reg.Register(200, span.KindCustom, func() span.Span { return &custom{} }),
		span.ErrDuplicateTag)

	data, err := reg.Marshal(&custom{Count: 300})
	require.NoError(t, err)

	got, err := reg.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, &custom{Count: 300}, got)

	reg.Unregister(200)
	_, ok := reg.TagFor(span.KindCustom)
	assert.False(t, ok)
	_, err = reg.Unmarshal(data)
	require.ErrorIs(t, err, span.ErrUnknownTag)
}

func TestRegistry_DuplicateKind(t *testing.T) {
	t.Parallel()

	reg := span.NewRegistry()
	require.NoError(t, reg.Register(200, span.KindCustom, func() span.Span { return &custom{} }))

	err := reg.Register(201, span.KindCustom, func() span.Span { return &custom{} })
	require.ErrorIs(t, err, span.ErrDuplicateKind)

	tag, ok := reg.TagFor(span.KindCustom)
	require.True(t, ok)
	assert.Equal(t, span.Tag(200), tag)
	assert.Equal(t, []span.Tag{200}, reg.Tags())

	reg.Unregister(200)
	require.NoError(t, reg.Register(201, span.KindCustom, func() span.Span { return &custom{} }))
}

func TestStyle_UnknownTextStyle(t *testing.T) {
	t.Parallel()

	reg := span.Builtin()
	for _, style := range []byte{0, byte(span.StyleQuote) + 1, 100} {
		_, err := reg.Unmarshal([]byte{byte(span.TagStyle), style, 0, 0})
		require.ErrorIs(t, err, span.ErrUnknownStyle, "style %d", style)
	}

	got, err := reg.Unmarshal([]byte{byte(span.TagStyle), byte(span.StyleQuote), 0, 0})
	require.NoError(t, err)
	assert.Equal(t, span.StyleQuote, got.(*span.Style).Style)
}

func TestBuiltinTags(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]span.Tag{span.TagLink, span.TagVideo, span.TagUnsupported, span.TagYouTube, span.TagStyle},
		span.Builtin().Tags())
}

func TestVideo_Lifecycle(t *testing.T) {
	t.Parallel()

	host := &fakeHost{width: 160}
	video := span.NewVideo("https://example.com/v.mp4")
	assert.Equal(t, span.StateDetached, video.State())

	video.OnSpannedSet(host)
	video.Start()
	assert.False(t, video.Running(), "start before attach must be a no-op")
	assert.Empty(t, host.players)

	host.alive = true
	video.OnAttached(host)
	assert.Equal(t, span.StateAttached, video.State())

	video.Start()
	assert.True(t, video.Running())
	assert.Equal(t, span.StateActive, video.State())

	video.Stop()
	assert.False(t, video.Running())
	assert.Equal(t, span.StateAttached, video.State())

	video.Start()
	require.Len(t, host.players, 1, "player is reused")

	host.alive = false
	video.OnDetached(host)
	assert.Equal(t, span.StateDetached, video.State())
	assert.True(t, host.players[0].released)
	assert.False(t, video.Running())
}

func TestVideo_Size(t *testing.T) {
	t.Parallel()

	video := span.NewVideo("v")
	width, height := video.Size(160)
	assert.Equal(t, 160, width)
	assert.Equal(t, 90, height)

	width, height = video.Size(0)
	assert.Zero(t, width)
	assert.Zero(t, height)
}

func TestYouTube_ThumbnailLoad(t *testing.T) {
	t.Parallel()

	host := &fakeHost{alive: true, width: 80}
	yt := span.NewYouTube("dQw4w9WgXcQ")
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", yt.Target())

	yt.OnSpannedSet(host)
	yt.OnAttached(host)
	yt.OnAttached(host)
	require.Len(t, host.downloads, 1, "download starts once")

	_, placeholder := yt.Size(80)
	assert.Equal(t, 45, placeholder)

	host.downloads[0](span.Image{Width: 480, Height: 360})
	assert.True(t, yt.Loaded())
	assert.Equal(t, []span.Span{yt}, host.loaded)

	_, height := yt.Size(80)
	assert.Equal(t, 60, height)
}

func TestYouTube_DetachCancelsDownload(t *testing.T) {
	t.Parallel()

	host := &fakeHost{alive: true}
	yt := span.NewYouTube("dQw4w9WgXcQ")
	yt.OnSpannedSet(host)
	yt.OnAttached(host)
	require.Len(t, host.downloads, 1)

	yt.OnDetached(host)
	host.downloads[0](span.Image{Width: 4, Height: 3})

	assert.False(t, yt.Loaded())
	assert.Empty(t, host.loaded)
}

func TestIsInteractive(t *testing.T) {
	t.Parallel()

	assert.True(t, span.IsInteractive(span.NewLink("u")))
	assert.True(t, span.IsInteractive(span.NewVideo("u")))
	assert.True(t, span.IsInteractive(span.NewUnsupported("u")))
	assert.True(t, span.IsInteractive(span.NewYouTube("u")))
	assert.False(t, span.IsInteractive(span.NewStyle(span.StyleBold)))
}
