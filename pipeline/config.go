package pipeline

import (
	"github.com/MfgOpen/industricons/core"
	"github.com/MfgOpen/industricons/core/codepoint"
	"github.com/MfgOpen/industricons/engine/fontgen"
	"github.com/MfgOpen/industricons/engine/svgopt"
	"github.com/npillmayer/schuko"
)

// Configuration keys understood by ConfigFrom.
const (
	KeyFontName        = "font-name"
	KeyCodepointStart  = "codepoint-start"
	KeyVersionFormat   = "version-format"
	KeyOnOptimizeError = "on-optimize-error"
)

// Config controls a pipeline run.
type Config struct {
	Root            string // project root directory
	FontName        string // font family, asset file stem and CSS prefix
	CodepointStart  int
	VersionFormat   fontgen.VersionFormat
	OnOptimizeError svgopt.FailurePolicy
}

// DefaultConfig returns the configuration used without any settings.
func DefaultConfig(root string) Config {
	return Config{
		Root:            root,
		FontName:        fontgen.DefaultName,
		CodepointStart:  codepoint.DefaultStart,
		VersionFormat:   fontgen.VersionFull,
		OnOptimizeError: svgopt.BestEffort,
	}
}

// ConfigFrom reads pipeline settings from conf. Keys not set keep their
// defaults.
func ConfigFrom(conf schuko.Configuration, root string) (Config, error) {
	c := DefaultConfig(root)
	if conf == nil {
		return c, nil
	}
	if conf.IsSet(KeyFontName) {
		if c.FontName = conf.GetString(KeyFontName); c.FontName == "" {
			return c, core.Error(core.EINVALID, "configuration: %s must not be empty", KeyFontName)
		}
	}
	if conf.IsSet(KeyCodepointStart) {
		c.CodepointStart = conf.GetInt(KeyCodepointStart)
		if c.CodepointStart <= 0 || c.CodepointStart > 0xFFFF {
			return c, core.Error(core.EINVALID, "configuration: %s out of range: %d",
				KeyCodepointStart, c.CodepointStart)
		}
	}
	var err error
	if conf.IsSet(KeyVersionFormat) {
		if c.VersionFormat, err = fontgen.ParseVersionFormat(conf.GetString(KeyVersionFormat)); err != nil {
			return c, err
		}
	}
	if conf.IsSet(KeyOnOptimizeError) {
		if c.OnOptimizeError, err = svgopt.ParseFailurePolicy(conf.GetString(KeyOnOptimizeError)); err != nil {
			return c, err
		}
	}
	return c, nil
}
