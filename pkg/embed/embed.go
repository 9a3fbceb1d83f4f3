// Package embed classifies links into typed embeddable media references.
//
// Classification is pure string and URI analysis: it never performs network
// I/O, holds no mutable state, and is safe to call from any goroutine.
package embed

import (
	"fmt"
	"strings"
)

// DefaultSoundCloudClientID is the consumer key used to compose SoundCloud
// stream URLs when a Classifier is not given one.
const DefaultSoundCloudClientID = "1f6456941b1176c22d44fb16ec2015a2"

// Kind identifies the media provider of an embed reference.
type Kind uint8

// Media kinds. KindUnsupported is the zero value.
const (
	KindUnsupported Kind = iota
	KindYouTube
	KindGfycat
	KindSoundCloud
	KindTwitter
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindYouTube:
		return "youtube"
	case KindGfycat:
		return "gfycat"
	case KindSoundCloud:
		return "soundcloud"
	case KindTwitter:
		return "twitter"
	default:
		return "unsupported"
	}
}

// Reference is the result of a successful classification.
type Reference struct {
	// Kind is the media provider.
	Kind Kind

	// ID is the canonical identifier: tweet id, 11-character YouTube id,
	// gfycat name or numeric SoundCloud track id.
	ID string

	// URL is the resolved URL for the media: the stream URL for SoundCloud,
	// the canonical page URL for the other kinds.
	URL string
}

// Classifier resolves links into references.
// The zero value is usable and composes SoundCloud stream URLs with
// DefaultSoundCloudClientID.
type Classifier struct {
	// SoundCloudClientID is the consumer key appended to SoundCloud streams.
	SoundCloudClientID string
}

// New creates a Classifier that uses clientID for SoundCloud streams.
func New(clientID string) *Classifier {
	return &Classifier{SoundCloudClientID: clientID}
}

// recognizer extracts a reference from a link, or reports no match.
type recognizer func(c *Classifier, link string) (Reference, bool)

// recognizers run in priority order; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var recognizers = []recognizer{
	recognizeTwitter,
	recognizeYouTube,
	recognizeGfycat,
	recognizeSoundCloud,
}

// Classify returns the first reference produced by the recognizers,
// tried in the order Twitter, YouTube, Gfycat, SoundCloud.
// Empty or malformed links report no match.
func (c *Classifier) Classify(link string) (Reference, bool) {
	link = strings.TrimSpace(link)
	if link == "" {
		return Reference{}, false
	}

	for _, recognize := range recognizers {
		if ref, ok := recognize(c, link); ok {
			return ref, true
		}
	}

	return Reference{}, false
}

func (c *Classifier) clientID() string {
	if c == nil || c.SoundCloudClientID == "" {
		return DefaultSoundCloudClientID
	}
	return c.SoundCloudClientID
}

// Classify classifies link with a default Classifier.
func Classify(link string) (Reference, bool) {
	var c Classifier
	return c.Classify(link)
}

func recognizeTwitter(_ *Classifier, link string) (Reference, bool) {
	id := TweetID(link)
	if id == "" {
		return Reference{}, false
	}
	return Reference{
		Kind: KindTwitter,
		ID:   id,
		URL:  TweetURL(id),
	}, true
}

func recognizeYouTube(_ *Classifier, link string) (Reference, bool) {
	id := YouTubeID(link)
	if id == "" {
		return Reference{}, false
	}
	return Reference{
		Kind: KindYouTube,
		ID:   id,
		URL:  YouTubeWatchURL(id),
	}, true
}

func recognizeGfycat(_ *Classifier, link string) (Reference, bool) {
	id := GfycatID(link)
	if id == "" {
		return Reference{}, false
	}
	return Reference{
		Kind: KindGfycat,
		ID:   id,
		URL:  "https://gfycat.com/" + id,
	}, true
}

func recognizeSoundCloud(c *Classifier, link string) (Reference, bool) {
	id := SoundCloudTrackID(link)
	if id == "" {
		return Reference{}, false
	}
	return Reference{
		Kind: KindSoundCloud,
		ID:   id,
		URL:  SoundCloudStreamURL(id, c.clientID()),
	}, true
}

// TweetURL returns the canonical status URL for a tweet id.
func TweetURL(id string) string {
	return "https://twitter.com/i/web/status/" + id
}

// YouTubeWatchURL returns the watch page URL for a video id.
func YouTubeWatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// YouTubeThumbnailURL returns the high quality thumbnail URL for a video id.
func YouTubeThumbnailURL(id string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id)
}

// GfycatVideoURL returns the direct mp4 URL for a gfycat id.
func GfycatVideoURL(id string) string {
	return "https://giant.gfycat.com/" + id + ".mp4"
}
