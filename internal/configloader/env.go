package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/yaklabco/richview/pkg/config"
)

// envVarPrefix is the prefix for all richview environment variables.
const envVarPrefix = "RICHVIEW_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeFloat
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":               {"flavor", envTypeString, "Markdown flavor: commonmark or gfm"},
	"FORMAT":               {"format", envTypeString, "Output format: text, table, json or summary"},
	"COLOR":                {"color", envTypeString, "Colored output: auto, always or never"},
	"CLASSIFY_LINKS":       {"classify_links", envTypeBool, "Turn media links into inline media: true or false"},
	"DETECT_LANGUAGE":      {"detect_language", envTypeBool, "Guess the language of unlabelled code: true or false"},
	"LINKIFY":              {"linkify", envTypeBool, "Turn bare web addresses into links: true or false"},
	"WIDTH":                {"layout.width", envTypeInt, "View width in cells (0 = terminal width)"},
	"PADDING_LEFT":         {"layout.padding_left", envTypeInt, "Left padding in cells"},
	"PADDING_RIGHT":        {"layout.padding_right", envTypeInt, "Right padding in cells"},
	"PADDING_TOP":          {"layout.padding_top", envTypeInt, "Top padding in rows"},
	"PADDING_BOTTOM":       {"layout.padding_bottom", envTypeInt, "Bottom padding in rows"},
	"LINE_SPACING_MULT":    {"layout.line_spacing_mult", envTypeFloat, "Line height multiplier"},
	"LINE_SPACING_ADD":     {"layout.line_spacing_add", envTypeInt, "Extra rows after each line"},
	"TAB_WIDTH":            {"layout.tab_width", envTypeInt, "Tab stop width in cells"},
	"SOUNDCLOUD_CLIENT_ID": {"embed.soundcloud_client_id", envTypeString, "Consumer key for SoundCloud streams"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with RICHVIEW_ (e.g., RICHVIEW_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

// LoadFromEnvFiles applies RICHVIEW_ variables read from dotenv files, with
// the process environment taking precedence over the files. Later files
// do not override earlier ones.
func LoadFromEnvFiles(cfg *config.Config, files ...string) error {
	if len(files) == 0 {
		return LoadFromEnv(cfg)
	}

	values, err := godotenv.Read(files...)
	if err != nil {
		return fmt.Errorf("read env files: %w", err)
	}

	return loadFromLookup(cfg, func(name string) (string, bool) {
		if value, ok := os.LookupEnv(name); ok {
			return value, true
		}
		value, ok := values[name]
		return value, ok
	})
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value, _ := lookup(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for %s: %q", envVar, value)
		}
		return setFloatField(cfg, mapping.field, f)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "color":
		cfg.Color = config.ColorMode(value)
	case "embed.soundcloud_client_id":
		cfg.Embed.SoundCloudClientID = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "classify_links":
		cfg.ClassifyLinks = &value
	case "detect_language":
		cfg.DetectLanguage = &value
	case "linkify":
		cfg.Linkify = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "layout.width":
		cfg.Layout.Width = value
	case "layout.padding_left":
		cfg.Layout.PaddingLeft = value
	case "layout.padding_right":
		cfg.Layout.PaddingRight = value
	case "layout.padding_top":
		cfg.Layout.PaddingTop = value
	case "layout.padding_bottom":
		cfg.Layout.PaddingBottom = value
	case "layout.line_spacing_add":
		cfg.Layout.LineSpacingAdd = value
	case "layout.tab_width":
		cfg.Layout.TabWidth = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setFloatField sets a floating point field on the config by field path.
func setFloatField(cfg *config.Config, field string, value float64) error {
	switch field {
	case "layout.line_spacing_mult":
		cfg.Layout.LineSpacingMult = value
	default:
		return fmt.Errorf("unknown number field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool {
		return vars[i].Name < vars[j].Name
	})
	return vars
}
