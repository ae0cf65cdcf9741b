package svgpack

import (
	"strconv"
	"strings"
)

// Reserved attributes.
const (
	attrName     = "data-name"     // root: pack identifier
	attrFeatures = "data-features" // root: comma separated feature tags
	attrColors   = "data-colors"   // root: comma separated slot:#rrggbb pairs
	attrState    = "data-state"    // group: comma separated state names
	attrStroke   = "data-stroke"   // group: stroke level, omitted for Regular
	attrStyle    = "style"

	hiddenStyle = "display: none;"
)

// Feature tags.
const (
	// FeatureStroke advertises stroke widths which can be scaled.
	FeatureStroke = "stroke"
	// FeatureStrokeLayers advertises one layer per stroke level.
	FeatureStrokeLayers = "stroke-layers"
)

const (
	tagSVG  = "svg"
	tagG    = "g"
	tagDefs = "defs"
)

// packAttrs are the root attributes only meaningful in a pack.
var packAttrs = []string{attrName, attrFeatures, attrColors}

// splitList decodes a comma separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func joinList(items []string) string { return strings.Join(items, ",") }

// ColorSlot is a named, declared color.
type ColorSlot struct {
	Name  string
	Value string // lower case #rrggbb
}

// Colors is an ordered mapping from slot names to colors.
type Colors []ColorSlot

// Get returns the color of the slot `name`.
func (cs Colors) Get(name string) (string, bool) {
	for _, c := range cs {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// Set updates the color of an existing slot, or appends a new one.
func (cs *Colors) Set(name, value string) {
	for i, c := range *cs {
		if c.Name == name {
			(*cs)[i].Value = value
			return
		}
	}
	*cs = append(*cs, ColorSlot{Name: name, Value: value})
}

// Slot returns the first slot whose color matches `value`,
// case insensitively.
func (cs Colors) Slot(value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, c := range cs {
		if strings.EqualFold(c.Value, value) {
			return c.Name, true
		}
	}
	return "", false
}

// parseColors decodes the data-colors attribute.
func parseColors(s string) Colors {
	var out Colors
	for _, pair := range splitList(s) {
		name, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		out.Set(name, strings.ToLower(value))
	}
	return out
}

func formatColors(cs Colors) string {
	pairs := make([]string, len(cs))
	for i, c := range cs {
		pairs[i] = c.Name + ":" + strings.ToLower(c.Value)
	}
	return joinList(pairs)
}

// parseStroke decodes the data-stroke attribute, returning 0
// for missing or invalid values.
func parseStroke(s string) StrokeLevel {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < int(Light) || n > int(Bold) {
		return 0
	}
	return StrokeLevel(n)
}

func formatStroke(s StrokeLevel) string { return strconv.Itoa(int(s)) }

// effective returns the level, with the default applied.
func (s StrokeLevel) effective() StrokeLevel {
	if s == 0 {
		return Regular
	}
	return s
}

// ratio is the stroke width multiplier applied by Customize.
func (s StrokeLevel) ratio() float64 {
	switch s.effective() {
	case Light:
		return 0.5
	case Bold:
		return 1.5
	default:
		return 1
	}
}

// ParseStrokeLevel accepts light, regular and bold,
// or an integer which is clamped to [Light, Bold].
func ParseStrokeLevel(s string) (StrokeLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "light":
		return Light, nil
	case "regular":
		return Regular, nil
	case "bold":
		return Bold, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < int(Light) {
		return Light, nil
	} else if n > int(Bold) {
		return Bold, nil
	}
	return StrokeLevel(n), nil
}
