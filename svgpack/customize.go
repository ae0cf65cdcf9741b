package svgpack

import (
	"strconv"
	"strings"

	"github.com/benoitkugler/svgpack/svgcolor"
	"github.com/benoitkugler/svgpack/svgnode"
	"github.com/benoitkugler/svgpack/svgopt"
	"golang.org/x/exp/slices"
)

// colorAttrs are the presentation attributes subject to recoloring.
var colorAttrs = []string{"stroke", "fill", "stop-color"}

const strokeWidthAttr = "stroke-width"

// Customize selects the layers of a pack matching `props` (state and stroke level),
// recolors its declared colors and scales its stroke widths, and returns
// the resulting plain SVG, optimized with unique ids.
// Selecting no layer is not an error: the result is an empty SVG.
// ErrNotPack is returned for invalid input.
func Customize(container string, props IconProperties) (string, error) {
	return CustomizeWith(container, props, svgopt.Default)
}

// CustomizeWith is the same as Customize, with custom optimization options.
func CustomizeWith(container string, props IconProperties, opts svgopt.Options) (string, error) {
	doc, err := parsePack(container)
	if err != nil {
		return "", err
	}
	root := doc.Root()
	md := readMeta(root)

	stroke, err := ParseStrokeLevel(props.Stroke)
	hasStroke := props.Stroke != "" && err == nil

	filterLayers(root, md, props.State, stroke, hasStroke)

	if len(props.Colors) != 0 && len(md.Colors) != 0 {
		recolor(root, md.Colors, props.Colors)
	}

	if hasStroke && md.HasFeature(FeatureStroke) {
		if ratio := stroke.ratio(); ratio != 1 {
			scaleStrokeWidths(root, ratio)
		}
	}

	root.Attrs.Delete(packAttrs...)
	return svgopt.OptimizeTree(doc, opts)
}

// filterLayers removes the groups not matching the requested state and
// stroke, and strips the pack attributes from the remaining ones.
func filterLayers(root *svgnode.Element, md *PackMetaData, state string, stroke StrokeLevel, hasStroke bool) {
	groups := layerGroups(root)
	hasStrokeLayers := false
	if md.HasFeature(FeatureStrokeLayers) {
		for _, g := range groups {
			if parseStroke(g.Attrs.Value(attrStroke)).effective() != Regular {
				hasStrokeLayers = true
				break
			}
		}
	}
	if !slices.Contains(md.States, state) {
		state = "" // unknown states select the base layers
	}
	wantedStroke := Regular
	if hasStroke {
		wantedStroke = stroke
	}

	keep := func(g *svgnode.Element) bool {
		states := splitList(g.Attrs.Value(attrState))
		if state != "" {
			if !slices.Contains(states, state) {
				return false
			}
		} else if len(states) != 0 {
			return false
		}
		if hasStrokeLayers {
			return parseStroke(g.Attrs.Value(attrStroke)).effective() == wantedStroke
		}
		return true
	}

	children := root.Children[:0]
	for _, c := range root.Children {
		if g, ok := c.(*svgnode.Element); ok && g.Name == tagG {
			if !keep(g) {
				continue
			}
			g.Attrs = nil // selection is final
		}
		children = append(children, c)
	}
	root.Children = children
}

// recolor replaces the declared colors of `declared` slots found in
// presentation attributes and inline styles by the colors in `requested`.
func recolor(root *svgnode.Element, declared Colors, requested map[string]string) {
	replacements := make(map[string]string) // slot -> hex
	for slot, value := range requested {
		if _, ok := declared.Get(slot); !ok {
			continue
		}
		if hex, ok := svgcolor.Normalize(value); ok {
			replacements[slot] = hex
		}
	}
	if len(replacements) == 0 {
		return
	}
	replace := func(value string) string {
		slot, ok := declared.Slot(value)
		if !ok {
			return value
		}
		if hex, ok := replacements[slot]; ok {
			return hex
		}
		return value
	}

	for _, m := range svgnode.FindAttrs(root, colorAttrs...) {
		if v := replace(m.Value); v != m.Value {
			root.At(m.Path).Attrs.Set(m.Name, v)
		}
	}
	for _, m := range svgnode.FindAttrs(root, attrStyle) {
		style, changed := rewriteStyle(m.Value, colorAttrs, func(_, value string) string { return replace(value) })
		if changed {
			root.At(m.Path).Attrs.Set(attrStyle, style)
		}
	}
}

// scaleStrokeWidths multiplies every stroke width by `ratio`.
func scaleStrokeWidths(root *svgnode.Element, ratio float64) {
	scale := func(value string) string {
		number, unit := splitUnit(value)
		w, err := strconv.ParseFloat(number, 64)
		if err != nil {
			return value
		}
		return strconv.FormatFloat(w*ratio, 'f', -1, 64) + unit
	}
	for _, m := range svgnode.FindAttrs(root, strokeWidthAttr) {
		if v := scale(m.Value); v != m.Value {
			root.At(m.Path).Attrs.Set(m.Name, v)
		}
	}
	for _, m := range svgnode.FindAttrs(root, attrStyle) {
		style, changed := rewriteStyle(m.Value, []string{strokeWidthAttr}, func(_, value string) string { return scale(value) })
		if changed {
			root.At(m.Path).Attrs.Set(attrStyle, style)
		}
	}
}

// splitUnit separates a length into its number and unit,
// as in "2.5px" -> "2.5", "px".
func splitUnit(length string) (number, unit string) {
	length = strings.TrimSpace(length)
	i := strings.LastIndexAny(length, "0123456789.") + 1
	return length[:i], length[i:]
}
