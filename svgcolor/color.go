// Parses the color values found in SVG presentation attributes,
// and renders them back in the canonical lower case #rrggbb form
// used by icon packs.
package svgcolor

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	// ErrNotAColor is returned for paint values which are valid SVG
	// but do not denote a plain color, like "none" or "url(#grad)".
	ErrNotAColor = errors.New("svg paint is not a plain color")

	errParamMismatch = errors.New("invalid color syntax")
)

// parseHex reads the SVG color string e.g. #FBD9BD or #FBD
func parseHex(colorStr string) (c color.NRGBA, err error) {
	colorStr = strings.TrimPrefix(colorStr, "#")
	switch len(colorStr) {
	case 6:
	case 3:
		// SVG specs say duplicate characters in case of 3 digit hex number
		colorStr = string([]byte{colorStr[0], colorStr[0],
			colorStr[1], colorStr[1], colorStr[2], colorStr[2]})
	default:
		return c, fmt.Errorf("%w: %q", errParamMismatch, colorStr)
	}
	var t uint64
	for _, v := range []struct {
		c *uint8
		s string
	}{
		{&c.R, colorStr[0:2]},
		{&c.G, colorStr[2:4]},
		{&c.B, colorStr[4:6]}} {
		t, err = strconv.ParseUint(v.s, 16, 8)
		if err != nil {
			return c, err
		}
		*v.c = uint8(t)
	}
	c.A = 0xff
	return c, nil
}

// Parse parses an SVG color string in the forms #rgb, #rrggbb,
// rgb(r, g, b) (integers or percentages), and all the SVG 1.1 names,
// obtained from the colornames package.
// Paint keywords (none, currentColor, url(...)) return ErrNotAColor.
func Parse(colorStr string) (color.NRGBA, error) {
	colorStr = strings.TrimSpace(colorStr)
	v := strings.ToLower(colorStr)
	switch {
	case v == "":
		return color.NRGBA{}, errParamMismatch
	case v == "none", v == "currentcolor", v == "transparent", v == "inherit",
		strings.HasPrefix(v, "url("):
		return color.NRGBA{}, ErrNotAColor
	case v[0] == '#':
		return parseHex(v)
	}
	if cn, ok := colornames.Map[v]; ok {
		return color.NRGBA{cn.R, cn.G, cn.B, cn.A}, nil // names are opaque
	}
	if cStr := strings.TrimPrefix(v, "rgb("); cStr != v {
		cStr = strings.TrimSuffix(cStr, ")")
		vals := strings.Split(cStr, ",")
		if len(vals) != 3 {
			return color.NRGBA{}, errParamMismatch
		}
		var cvals [3]uint8
		var err error
		for i := range cvals {
			cvals[i], err = parseColorValue(vals[i])
			if err != nil {
				return color.NRGBA{}, err
			}
		}
		return color.NRGBA{cvals[0], cvals[1], cvals[2], 0xff}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", errParamMismatch, colorStr)
}

func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, errParamMismatch
	}
	if v[len(v)-1] == '%' {
		n, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-1]), 64)
		if err != nil {
			return 0, err
		}
		return clampByte(n * 0xff / 100), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n > 255 {
		n = 255
	} else if n < 0 {
		n = 0
	}
	return uint8(n), nil
}

func clampByte(f float64) uint8 {
	f = math.Round(f)
	if f < 0 {
		return 0
	} else if f > 255 {
		return 255
	}
	return uint8(f)
}

// Hex returns the lower case #rrggbb form of `c`. Transparency is dropped.
func Hex(c color.Color) string {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", nc.R, nc.G, nc.B)
}

// Normalize parses `colorStr` and returns its hex form.
func Normalize(colorStr string) (string, bool) {
	c, err := Parse(colorStr)
	if err != nil {
		return "", false
	}
	return Hex(c), true
}

// FromFloats converts channels in [0, 1], as found in animation
// descriptions, to a color.
func FromFloats(r, g, b float64) color.NRGBA {
	return color.NRGBA{clampByte(r * 255), clampByte(g * 255), clampByte(b * 255), 0xff}
}
