package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"SignaturePad/internal/logger"
)

// AttributePrefix is the prefix of the data attributes a pad element carries.
// FromAttributes accepts keys with or without it.
const AttributePrefix = "data-pad-"

// Attribute keys, without AttributePrefix.
const (
	KeyColor            = "color"
	KeyThickness        = "thickness"
	KeyLineJoin         = "line-join"
	KeyLineCap          = "line-cap"
	KeyScale            = "scale"
	KeyMinThickness     = "min-thickness"
	KeyMaxThickness     = "max-thickness"
	KeyMinSpeed         = "min-speed"
	KeyMaxSpeed         = "max-speed"
	KeySmoothness       = "smoothness"
	KeySpeedSensitivity = "speed-sensitivity"
	KeyFormat           = "format"
)

// FromAttributes builds a Config from string attributes. Missing or malformed
// values silently take their default; max-thickness defaults to thickness.
// When a key is given both with and without AttributePrefix, the prefixed
// value wins.
func FromAttributes(attrs map[string]string) Config {
	a := NormalizeAttributes(attrs)

	c := Default()
	if v, ok := a[KeyColor]; ok {
		if _, valid := parseColor(v); valid {
			c.LineColor = v
		} else {
			fallback(KeyColor, v, DefaultLineColor)
		}
	}
	c.LineThickness = floatAttr(a, KeyThickness, DefaultLineThickness, positive)
	c.LineJoin = ParseJoin(a[KeyLineJoin])
	c.LineCap = ParseCap(a[KeyLineCap])
	c.ScaleFactor = floatAttr(a, KeyScale, DefaultScaleFactor, positive)
	c.MaxThickness = floatAttr(a, KeyMaxThickness, c.LineThickness, positive)
	c.MinThickness = floatAttr(a, KeyMinThickness, DefaultMinThickness, positive)
	c.MinSpeed = floatAttr(a, KeyMinSpeed, DefaultMinSpeed, func(v float64) bool { return finite(v) && v >= 0 })
	c.MaxSpeed = floatAttr(a, KeyMaxSpeed, DefaultMaxSpeed, positive)
	// A single speed bound that crosses the other one's default moves that
	// default out of the way instead of being swapped.
	_, minSet := a[KeyMinSpeed]
	_, maxSet := a[KeyMaxSpeed]
	switch {
	case minSet && !maxSet && c.MinSpeed >= c.MaxSpeed:
		c.MaxSpeed = c.MinSpeed + DefaultMaxSpeed - DefaultMinSpeed
	case maxSet && !minSet && c.MaxSpeed <= c.MinSpeed:
		c.MinSpeed = 0
	}
	c.SpeedSensitivity = floatAttr(a, KeySpeedSensitivity, DefaultSpeedSensitivity, positive)
	if v, ok := a[KeySmoothness]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fallback(KeySmoothness, v, DefaultSmoothness)
		} else {
			c.SmoothnessWindow = n
		}
	}
	c.ExportFormat = ParseFormat(a[KeyFormat])
	return c.Sanitize()
}

// Parse reads a YAML document holding the same keys as the data attributes.
func Parse(data []byte) (Config, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	attrs := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		attrs[k] = fmt.Sprint(v)
	}
	return FromAttributes(attrs), nil
}

// Load reads a YAML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Marshal renders c as YAML using the attribute keys.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// NormalizeAttributes lower-cases keys and strips AttributePrefix. A prefixed
// key overrides the same key given without the prefix.
func NormalizeAttributes(attrs map[string]string) map[string]string {
	a := make(map[string]string, len(attrs))
	for k, v := range attrs {
		k = strings.ToLower(k)
		if !strings.HasPrefix(k, AttributePrefix) {
			a[k] = strings.TrimSpace(v)
		}
	}
	for k, v := range attrs {
		k = strings.ToLower(k)
		if strings.HasPrefix(k, AttributePrefix) {
			a[strings.TrimPrefix(k, AttributePrefix)] = strings.TrimSpace(v)
		}
	}
	return a
}

// Attributes renders c as unprefixed attributes; FromAttributes(c.Attributes())
// yields c again for any sanitized c.
func (c Config) Attributes() map[string]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return map[string]string{
		KeyColor:            c.LineColor,
		KeyThickness:        f(c.LineThickness),
		KeyLineJoin:         string(c.LineJoin),
		KeyLineCap:          string(c.LineCap),
		KeyScale:            f(c.ScaleFactor),
		KeyMinThickness:     f(c.MinThickness),
		KeyMaxThickness:     f(c.MaxThickness),
		KeyMinSpeed:         f(c.MinSpeed),
		KeyMaxSpeed:         f(c.MaxSpeed),
		KeySmoothness:       strconv.Itoa(c.SmoothnessWindow),
		KeySpeedSensitivity: f(c.SpeedSensitivity),
		KeyFormat:           string(c.ExportFormat),
	}
}

func floatAttr(a map[string]string, key string, def float64, valid func(float64) bool) float64 {
	v, ok := a[key]
	if !ok || v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !valid(f) {
		fallback(key, v, def)
		return def
	}
	return f
}

func fallback(key, value string, def any) {
	logger.L().Debug("config value replaced by default", "key", key, "value", value, "default", def)
}
