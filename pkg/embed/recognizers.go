package embed

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// youtubePattern matches watch?v=, /embed/, /v/, /e/, channel-style paths
// and youtu.be short links, capturing the 11-character video id.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var youtubePattern = regexp.MustCompile(
	`(?i)(?:youtube(?:-nocookie)?\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`,
)

// soundCloudStreamFormat is the stream URL template for a numeric track id.
const soundCloudStreamFormat = "https://api.soundcloud.com/tracks/%s/stream?consumer_key=%s"

// TweetID returns the status id of a Twitter link, or "" when link is not
// a tweet. The host or path must mention twitter (or the host must be the
// t.co shortener) and the last path segment must be all digits.
func TweetID(link string) string {
	if link == "" {
		return ""
	}

	parsed, ok := parseLink(link)
	if !ok {
		return ""
	}

	host := strings.ToLower(parsed.Hostname())
	isTwitter := strings.Contains(host, "twitter") ||
		strings.Contains(strings.ToLower(parsed.Path), "twitter") ||
		host == "t.co" || strings.HasSuffix(host, ".t.co")
	if !isTwitter {
		return ""
	}

	segments := pathSegments(parsed)
	if len(segments) == 0 {
		return ""
	}

	last := segments[len(segments)-1]
	if !isDigits(last) {
		return ""
	}
	return last
}

// YouTubeID returns the 11-character video id of a YouTube link, or "".
// Matching is case-insensitive.
func YouTubeID(link string) string {
	match := youtubePattern.FindStringSubmatch(link)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

// GfycatID returns the gfycat name of a gfycat.com link, or "".
// A single path segment is the id; with two segments the second one is.
// Any other segment count is not a match.
func GfycatID(link string) string {
	parsed, ok := parseLink(link)
	if !ok {
		return ""
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" || !strings.HasSuffix(host, "gfycat.com") {
		return ""
	}

	segments := pathSegments(parsed)
	switch len(segments) {
	case 1:
		return segments[0]
	case 2:
		return segments[1]
	default:
		return ""
	}
}

// SoundCloudTrackID returns the numeric track id referenced by a SoundCloud
// link, or "".
//
// Links on an api.soundcloud host are track URLs themselves. Other
// soundcloud hosts (player widgets) carry the track URL in the "url" query
// parameter. The id is the first all-digit path segment of the track URL.
func SoundCloudTrackID(link string) string {
	parsed, ok := parseLink(link)
	if !ok {
		return ""
	}

	host := strings.ToLower(parsed.Host)
	if host == "" {
		return ""
	}

	var trackURL string
	switch {
	case strings.Contains(host, "api.soundcloud"):
		trackURL = link
	case strings.Contains(host, "soundcloud"):
		trackURL = parsed.Query().Get("url")
	default:
		return ""
	}

	if trackURL == "" {
		return ""
	}

	return firstNumericSegment(trackURL)
}

// SoundCloudStreamURL composes the stream URL for a track id.
// It returns "" for an empty track id.
func SoundCloudStreamURL(trackID, clientID string) string {
	if trackID == "" {
		return ""
	}
	if clientID == "" {
		clientID = DefaultSoundCloudClientID
	}
	return fmt.Sprintf(soundCloudStreamFormat, trackID, clientID)
}

// SoundCloudStream composes the stream URL for a track URL whose path holds
// the numeric track id, such as https://api.soundcloud.com/tracks/196567484.
// It scans segments in the same order as SoundCloudTrackID.
func SoundCloudStream(trackURL, clientID string) string {
	return SoundCloudStreamURL(firstNumericSegment(trackURL), clientID)
}

func firstNumericSegment(link string) string {
	parsed, ok := parseLink(link)
	if !ok {
		return ""
	}
	for _, segment := range pathSegments(parsed) {
		if isDigits(segment) {
			return segment
		}
	}
	return ""
}

// parseLink parses link as a URL. Scheme-less links such as
// "youtu.be/abc" are retried as network-path references so their host is
// recognized.
func parseLink(link string) (*url.URL, bool) {
	parsed, err := url.Parse(link)
	if err != nil {
		return nil, false
	}

	if parsed.Scheme == "" && parsed.Host == "" && !strings.HasPrefix(link, "/") {
		reparsed, err := url.Parse("//" + link)
		if err != nil {
			return nil, false
		}
		parsed = reparsed
	}

	return parsed, true
}

// pathSegments returns the non-empty, decoded segments of the URL path.
func pathSegments(parsed *url.URL) []string {
	raw := strings.Split(parsed.Path, "/")
	segments := make([]string, 0, len(raw))
	for _, segment := range raw {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
