package configloader

import "github.com/yaklabco/richview/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Toggles: override overwrites base if override sets them, so false
//     from a higher precedence source wins
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.ClassifyLinks != nil {
		v := *override.ClassifyLinks
		result.ClassifyLinks = &v
	}
	if override.DetectLanguage != nil {
		v := *override.DetectLanguage
		result.DetectLanguage = &v
	}
	if override.Linkify != nil {
		v := *override.Linkify
		result.Linkify = &v
	}
	if override.Debug {
		result.Debug = true
	}

	result.Layout = mergeLayout(base.Layout, override.Layout)

	if override.Embed.SoundCloudClientID != "" {
		result.Embed.SoundCloudClientID = override.Embed.SoundCloudClientID
	}

	return result
}

// mergeLayout merges layout settings field by field.
func mergeLayout(base, override config.LayoutConfig) config.LayoutConfig {
	result := base

	overrideInt(&result.Width, override.Width)
	overrideInt(&result.PaddingLeft, override.PaddingLeft)
	overrideInt(&result.PaddingRight, override.PaddingRight)
	overrideInt(&result.PaddingTop, override.PaddingTop)
	overrideInt(&result.PaddingBottom, override.PaddingBottom)
	overrideInt(&result.LineHeight, override.LineHeight)
	overrideInt(&result.LineSpacingAdd, override.LineSpacingAdd)
	overrideInt(&result.TabWidth, override.TabWidth)
	overrideInt(&result.AspectWidth, override.AspectWidth)
	overrideInt(&result.AspectHeight, override.AspectHeight)

	if override.LineSpacingMult != 0 {
		result.LineSpacingMult = override.LineSpacingMult
	}

	return result
}

func overrideInt(dst *int, value int) {
	if value != 0 {
		*dst = value
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
