package fontgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MfgOpen/industricons/core"
	"github.com/MfgOpen/industricons/core/codepoint"
)

// VersionFormat selects how the font version is written to the font's
// name table.
type VersionFormat int

const (
	VersionFull       VersionFormat = iota // "Version 1.2.3"
	VersionMajorMinor                      // "Version 1.2"
)

func (vf VersionFormat) String() string {
	switch vf {
	case VersionFull:
		return "full"
	case VersionMajorMinor:
		return "major-minor"
	}
	return fmt.Sprintf("VersionFormat(%d)", int(vf))
}

// ParseVersionFormat is the inverse of VersionFormat.String.
func ParseVersionFormat(s string) (VersionFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return VersionFull, nil
	case "major-minor", "majorminor":
		return VersionMajorMinor, nil
	}
	return VersionFull, core.Error(core.EINVALID, "unknown version format: %q", s)
}

// Templates holds paths to Handlebars templates. Empty paths select the
// bundled templates.
type Templates struct {
	HTML string
	CSS  string
}

// Options configures font generation.
type Options struct {
	Name          string // font family name and asset file name stem
	Prefix        string // CSS class prefix
	InputDir      string // directory of optimized SVG icons
	OutputDir     string
	Codepoints    *codepoint.Mapping
	Templates     Templates
	Version       string // e.g. "1.2.3"
	Description   string
	VersionFormat VersionFormat
	Normalize     bool // scale every icon to the full font height
	FontHeight    int  // units per em
	Descent       int
}

// DefaultName is the font name used if none is configured.
const DefaultName = "industricon"

// DefaultOptions returns options with defaults for everything but the
// directories, the codepoints and the version.
func DefaultOptions() Options {
	return Options{
		Name:       DefaultName,
		Prefix:     DefaultName,
		Normalize:  true,
		FontHeight: 1000,
	}
}

func (opts *Options) check() error {
	if opts.Name == "" {
		return core.Error(core.EINVALID, "font name missing")
	}
	if opts.Prefix == "" {
		opts.Prefix = opts.Name
	}
	if opts.Codepoints == nil {
		return core.Error(core.EINVALID, "no codepoints given for font %s", opts.Name)
	}
	if opts.InputDir == "" || opts.OutputDir == "" {
		return core.Error(core.EINVALID, "input and output directory required for font %s", opts.Name)
	}
	if opts.FontHeight == 0 {
		opts.FontHeight = 1000
	}
	if opts.Descent < 0 || opts.Descent >= opts.FontHeight {
		return core.Error(core.EINVALID, "descent %d out of range for font height %d",
			opts.Descent, opts.FontHeight)
	}
	return nil
}

// formatVersion turns a version like "1.2.3" (optionally prefixed by "v"
// or "Version ") into the name table string and the font revision.
// The revision is always major.minor. A semver pre-release or build suffix
// ("1.2.3-beta.1", "1.2.3+42") is kept verbatim by VersionFull.
func formatVersion(v string, format VersionFormat) (string, float64, error) {
	s := strings.TrimSpace(v)
	s = strings.TrimPrefix(s, "Version ")
	s = strings.TrimPrefix(s, "v")
	numbers := s
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		if i == len(s)-1 {
			return "", 0, core.Error(core.EINVALID, "invalid font version %q", v)
		}
		numbers = s[:i]
	}
	parts := strings.Split(numbers, ".")
	for _, p := range parts {
		if _, err := strconv.ParseUint(p, 10, 16); err != nil {
			return "", 0, core.WrapError(err, core.EINVALID, "invalid font version %q", v)
		}
	}
	minor := "0"
	if len(parts) > 1 {
		minor = parts[1]
	}
	rev, err := strconv.ParseFloat(parts[0]+"."+minor, 64)
	if err != nil {
		return "", 0, core.WrapError(err, core.EINVALID, "invalid font version %q", v)
	}
	if format == VersionMajorMinor {
		return "Version " + parts[0] + "." + minor, rev, nil
	}
	return "Version " + s, rev, nil
}
