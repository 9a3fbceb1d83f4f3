package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every setting. If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor: commonmark or gfm
flavor: gfm

# Turn links to YouTube, Gfycat and SoundCloud into inline media
# classify_links: true

# Layout settings in terminal cells
# layout:
#   width: 80
#   padding_left: 2
#   padding_right: 2
`)

	return buf.Bytes()
}

// generateFullTemplate creates a template with every setting documented.
func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# richview configuration - Full Template
# See: https://github.com/yaklabco/richview
#
# Uncomment and modify settings as needed.

# Markdown flavor: commonmark or gfm
flavor: gfm

# Output format: text, table, json or summary
format: text

# Colored output: auto, always or never
color: auto

# Turn links to YouTube, Gfycat and SoundCloud into inline media
classify_links: true

# Guess the language of code blocks that declare none
detect_language: true

# Turn bare web addresses in text into links
linkify: true

layout:
  # Available width in cells (0 = terminal width)
  width: 0

  # Padding around the content
  padding_left: 0
  padding_right: 0
  padding_top: 0
  padding_bottom: 0

  # Text line height and spacing (height * mult + add)
  line_height: 1
  line_spacing_mult: 1
  line_spacing_add: 0

  # Tab stop width
  tab_width: 4

  # Aspect ratio of media without an intrinsic size
  aspect_width: 16
  aspect_height: 9

embed:
  # Consumer key appended to SoundCloud stream URLs
`)
	fmt.Fprintf(&buf, "  soundcloud_client_id: %s\n", NewConfig().Embed.SoundCloudClientID)

	return buf.Bytes()
}

// templateToJSON renders the defaults as a JSON template.
func templateToJSON() ([]byte, error) {
	defaults := NewConfig()
	cfg := map[string]any{
		"flavor":          defaults.Flavor,
		"format":          defaults.Format,
		"color":           defaults.Color,
		"classify_links":  true,
		"detect_language": true,
		"linkify":         true,
		"layout": map[string]any{
			"width":     0,
			"tab_width": 4,
		},
		"embed": map[string]any{
			"soundcloud_client_id": defaults.Embed.SoundCloudClientID,
		},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# richview configuration
# See: https://github.com/yaklabco/richview`
}
