// Package config defines core configuration types for richview.
// These types are plain data; discovery and merging live in the CLI's
// config loader.
package config

import (
	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/embed"
	"github.com/yaklabco/richview/pkg/layout"
)

// OutputFormat specifies the output format for command results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// ColorMode controls colored terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// LayoutConfig mirrors layout.Style. Zero values fall back to the engine
// defaults.
type LayoutConfig struct {
	// Width is the available view width in cells. 0 means the terminal
	// width, or DefaultWidth when output is not a terminal.
	Width int `yaml:"width"`

	PaddingLeft   int `yaml:"padding_left"`
	PaddingRight  int `yaml:"padding_right"`
	PaddingTop    int `yaml:"padding_top"`
	PaddingBottom int `yaml:"padding_bottom"`

	LineHeight      int     `yaml:"line_height"`
	LineSpacingMult float64 `yaml:"line_spacing_mult"`
	LineSpacingAdd  int     `yaml:"line_spacing_add"`
	TabWidth        int     `yaml:"tab_width"`

	AspectWidth  int `yaml:"aspect_width"`
	AspectHeight int `yaml:"aspect_height"`
}

// DefaultWidth is the view width used when neither the config nor the
// terminal provides one.
const DefaultWidth = 80

// Style converts the layout section to an engine style.
func (l LayoutConfig) Style() layout.Style {
	return layout.Style{
		PaddingLeft:     l.PaddingLeft,
		PaddingRight:    l.PaddingRight,
		PaddingTop:      l.PaddingTop,
		PaddingBottom:   l.PaddingBottom,
		LineHeight:      l.LineHeight,
		LineSpacingMult: l.LineSpacingMult,
		LineSpacingAdd:  l.LineSpacingAdd,
		TabWidth:        l.TabWidth,
		AspectWidth:     l.AspectWidth,
		AspectHeight:    l.AspectHeight,
	}
}

// EmbedConfig configures link classification.
type EmbedConfig struct {
	// SoundCloudClientID is appended to SoundCloud stream URLs.
	SoundCloudClientID string `yaml:"soundcloud_client_id"`
}

// Config is the root configuration structure for richview.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// Format specifies the output format ("text" or "json").
	Format OutputFormat `yaml:"format"`

	// Color controls colored output ("auto", "always" or "never").
	Color ColorMode `yaml:"color"`

	// ClassifyLinks turns plain links to media into inline media spans.
	// nil means unset so that lower precedence sources can decide.
	ClassifyLinks *bool `yaml:"classify_links,omitempty"`

	// DetectLanguage guesses the language of unlabelled code.
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	// Linkify turns bare web addresses in text into links.
	Linkify *bool `yaml:"linkify,omitempty"`

	Layout LayoutConfig `yaml:"layout"`
	Embed  EmbedConfig  `yaml:"embed"`

	// CLI-level options (not persisted to config files).

	// Debug enables debug logging.
	Debug bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	classify := true
	detect := true
	linkify := true
	return &Config{
		Flavor:         FlavorGFM,
		Format:         FormatText,
		Color:          ColorAuto,
		ClassifyLinks:  &classify,
		DetectLanguage: &detect,
		Linkify:        &linkify,
		Embed: EmbedConfig{
			SoundCloudClientID: embed.DefaultSoundCloudClientID,
		},
	}
}

// Classifier returns an embed classifier using the configured client id.
func (c *Config) Classifier() *embed.Classifier {
	return embed.New(c.Embed.SoundCloudClientID)
}

// IngestOptions returns the document ingestion options for c.
func (c *Config) IngestOptions() document.IngestOptions {
	return document.IngestOptions{
		Classifier:     c.Classifier(),
		ClassifyLinks:  boolValue(c.ClassifyLinks),
		DetectLanguage: boolValue(c.DetectLanguage),
		Linkify:        boolValue(c.Linkify),
	}
}

func boolValue(b *bool) bool {
	return b != nil && *b
}
