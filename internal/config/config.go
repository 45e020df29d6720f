// Package config defines the render configuration of a signature pad and the
// ways it is read: data attributes, YAML files and defaults.
package config

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Format is an export encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported export formats, default first.
var Formats = []Format{FormatPNG, FormatJPEG, FormatSVG, FormatPDF}

// ParseFormat maps a user supplied format name to a Format. "jpg" is an alias
// of jpeg; anything unknown falls back to png.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpg", "jpeg":
		return FormatJPEG
	case "svg":
		return FormatSVG
	case "pdf":
		return FormatPDF
	default:
		return FormatPNG
	}
}

// MediaType returns the MIME type used in data URLs.
func (f Format) MediaType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	default:
		return "image/png"
	}
}

// Extension returns the file extension, without the dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(ParseFormat(string(f)))
}

// Join is the shape drawn where two stroke segments meet.
type Join string

const (
	JoinRound Join = "round"
	JoinBevel Join = "bevel"
	JoinMiter Join = "miter"
)

// ParseJoin returns the named join, or JoinRound for anything unknown.
func ParseJoin(s string) Join {
	switch Join(strings.ToLower(strings.TrimSpace(s))) {
	case JoinBevel:
		return JoinBevel
	case JoinMiter:
		return JoinMiter
	default:
		return JoinRound
	}
}

// Cap is the shape drawn at the open ends of a stroke segment.
type Cap string

const (
	CapRound  Cap = "round"
	CapButt   Cap = "butt"
	CapSquare Cap = "square"
)

// ParseCap returns the named cap, or CapRound for anything unknown.
func ParseCap(s string) Cap {
	switch Cap(strings.ToLower(strings.TrimSpace(s))) {
	case CapButt:
		return CapButt
	case CapSquare:
		return CapSquare
	default:
		return CapRound
	}
}

// Default values. They are part of the attribute contract and must not
// change between releases.
const (
	DefaultLineColor        = "black"
	DefaultLineThickness    = 3.0
	DefaultScaleFactor      = 2.0
	DefaultMinThickness     = 1.0
	DefaultMinSpeed         = 0.05
	DefaultMaxSpeed         = 3.0
	DefaultSpeedSensitivity = 1.0
	DefaultSmoothness       = 5
)

// Config is the render configuration of one pad. Thicknesses are in display
// pixels; speeds are in backing pixels per millisecond.
type Config struct {
	LineColor        string  `yaml:"color"`
	LineThickness    float64 `yaml:"thickness"`
	LineJoin         Join    `yaml:"line-join"`
	LineCap          Cap     `yaml:"line-cap"`
	ScaleFactor      float64 `yaml:"scale"`
	MinThickness     float64 `yaml:"min-thickness"`
	MaxThickness     float64 `yaml:"max-thickness"`
	MinSpeed         float64 `yaml:"min-speed"`
	MaxSpeed         float64 `yaml:"max-speed"`
	SmoothnessWindow int     `yaml:"smoothness"`
	SpeedSensitivity float64 `yaml:"speed-sensitivity"`
	ExportFormat     Format  `yaml:"format"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		LineColor:        DefaultLineColor,
		LineThickness:    DefaultLineThickness,
		LineJoin:         JoinRound,
		LineCap:          CapRound,
		ScaleFactor:      DefaultScaleFactor,
		MinThickness:     DefaultMinThickness,
		MaxThickness:     DefaultLineThickness,
		MinSpeed:         DefaultMinSpeed,
		MaxSpeed:         DefaultMaxSpeed,
		SmoothnessWindow: DefaultSmoothness,
		SpeedSensitivity: DefaultSpeedSensitivity,
		ExportFormat:     FormatPNG,
	}
}

// Sanitize returns a copy of c in which every invalid field is replaced by
// its default. It never fails.
func (c Config) Sanitize() Config {
	if _, ok := parseColor(c.LineColor); !ok {
		c.LineColor = DefaultLineColor
	}
	if !positive(c.LineThickness) {
		c.LineThickness = DefaultLineThickness
	}
	c.LineJoin = ParseJoin(string(c.LineJoin))
	c.LineCap = ParseCap(string(c.LineCap))
	if !positive(c.ScaleFactor) {
		c.ScaleFactor = DefaultScaleFactor
	}
	if !positive(c.MaxThickness) {
		c.MaxThickness = c.LineThickness
	}
	if !positive(c.MinThickness) {
		c.MinThickness = math.Min(DefaultMinThickness, c.MaxThickness)
	}
	if c.MinThickness > c.MaxThickness {
		c.MinThickness, c.MaxThickness = c.MaxThickness, c.MinThickness
	}
	if !finite(c.MinSpeed) || c.MinSpeed < 0 {
		c.MinSpeed = DefaultMinSpeed
	}
	if !positive(c.MaxSpeed) {
		c.MaxSpeed = DefaultMaxSpeed
	}
	if c.MinSpeed > c.MaxSpeed {
		c.MinSpeed, c.MaxSpeed = c.MaxSpeed, c.MinSpeed
	}
	if c.MaxSpeed == c.MinSpeed {
		c.MaxSpeed = c.MinSpeed + DefaultMaxSpeed - DefaultMinSpeed
	}
	if c.SmoothnessWindow < 1 {
		c.SmoothnessWindow = DefaultSmoothness
	}
	if !positive(c.SpeedSensitivity) {
		c.SpeedSensitivity = DefaultSpeedSensitivity
	}
	c.ExportFormat = ParseFormat(string(c.ExportFormat))
	return c
}

// Color returns the parsed line color. Unparseable values yield black.
func (c Config) Color() color.NRGBA {
	col, ok := parseColor(c.LineColor)
	if !ok {
		return color.NRGBA{A: 0xff}
	}
	return col
}

// parseColor accepts SVG/CSS color keywords and #rgb, #rgba, #rrggbb and
// #rrggbbaa hex notation.
func parseColor(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return color.NRGBA{}, false
	}
	if named, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}, true
	}
	if s[0] != '#' {
		return color.NRGBA{}, false
	}
	hex := s[1:]
	switch len(hex) {
	case 3, 4:
		expanded := make([]byte, 0, len(hex)*2)
		for i := 0; i < len(hex); i++ {
			expanded = append(expanded, hex[i], hex[i])
		}
		hex = string(expanded)
	case 6, 8:
	default:
		return color.NRGBA{}, false
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func positive(v float64) bool { return finite(v) && v > 0 }
