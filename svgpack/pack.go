package svgpack

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/svgpack/svgcolor"
	"github.com/benoitkugler/svgpack/svgnode"
	"golang.org/x/exp/slices"
)

const unknownName = "unknown"

// Pack merges `layers` into one icon pack, described by the properties
// and states declared by `src` (which may be nil).
// Layers which are not plain, non empty SVG documents, which are already
// packs, or which match no declared state are skipped, or rejected
// according to `errMode`.
// The order of `layers` is the paint order of the pack groups.
// ErrNoLayers is returned if no layer is accepted.
func Pack(src Source, layers []Layer, errMode ErrorMode) (string, error) {
	var (
		name       string
		properties []Property
		states     []StateDeclaration
	)
	if src != nil {
		name, properties, states = src.Name(), src.Properties(), src.States()
	}

	var (
		root         *svgnode.Element
		groups       []svgnode.Node
		defs         definitions
		strokeLayers bool
	)
	for i, layer := range layers {
		el, err := parseLayer(layer)
		if err == nil {
			if _, ok := matchState(states, layer.State); !ok {
				err = fmt.Errorf("%w: %s", ErrUnmatchedState, joinList(layer.State))
			}
		}
		if err != nil {
			if err = errMode.handleError(fmt.Errorf("layer %d: %w", i, err)); err != nil {
				return "", err
			}
			continue
		}
		decl, _ := matchState(states, layer.State)

		if root == nil {
			root = &svgnode.Element{Name: el.Name, Attrs: el.Attrs.Clone()}
		}

		g := &svgnode.Element{Name: tagG}
		hidden := false
		if layer.Stroke != 0 && layer.Stroke != Regular {
			g.Attrs.Set(attrStroke, formatStroke(layer.Stroke))
			strokeLayers = true
			hidden = true
		}
		if len(layer.State) != 0 && !decl.Default {
			g.Attrs.Set(attrState, joinList(layer.State))
			hidden = true
		}
		if hidden {
			g.Attrs.Set(attrStyle, hiddenStyle)
		}
		for _, c := range el.Children {
			if ce, ok := c.(*svgnode.Element); ok && ce.Name == tagDefs {
				defs.add(ce.Children)
				continue
			}
			g.Append(c)
		}
		groups = append(groups, g)
	}
	if root == nil {
		return "", ErrNoLayers
	}

	if name == "" {
		name = unknownName
	}
	features, colors, err := encodeProperties(properties, strokeLayers, errMode)
	if err != nil {
		return "", err
	}
	root.Attrs.Delete(attrFeatures, attrColors)
	root.Attrs.Set(attrName, name)
	if len(features) != 0 {
		root.Attrs.Set(attrFeatures, joinList(features))
	}
	if len(colors) != 0 {
		root.Attrs.Set(attrColors, formatColors(colors))
	}

	root.Children = groups
	if len(defs.nodes) != 0 {
		root.Append(&svgnode.Element{Name: tagDefs, Children: defs.nodes})
	}
	return root.Build(), nil
}

// parseLayer returns the root of a packable layer.
func parseLayer(layer Layer) (*svgnode.Element, error) {
	if layer.Stroke > Bold {
		return nil, fmt.Errorf("%w: stroke level %d", ErrInvalidLayer, layer.Stroke)
	}
	doc, err := svgnode.ParseString(layer.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLayer, err)
	}
	root := doc.Root()
	switch {
	case root.LocalName() != tagSVG:
		return nil, fmt.Errorf("%w: root element is <%s>", ErrInvalidLayer, root.Name)
	case root.IsBlank():
		return nil, fmt.Errorf("%w: empty svg", ErrInvalidLayer)
	case root.Attrs.Has(attrName):
		return nil, fmt.Errorf("%w: layer is already a pack", ErrInvalidLayer)
	}
	return root, nil
}

// matchState returns the declaration a layer belongs to: the default
// one for layers without state, or the first one named by the layer.
// A source declaring no state at all only accepts default layers.
func matchState(states []StateDeclaration, layerStates []string) (StateDeclaration, bool) {
	if len(layerStates) == 0 {
		if len(states) == 0 {
			return StateDeclaration{Default: true}, true
		}
		for _, decl := range states {
			if decl.Default {
				return decl, true
			}
		}
		return StateDeclaration{}, false
	}
	for _, decl := range states {
		if slices.Contains(layerStates, decl.Name) {
			return decl, true
		}
	}
	return StateDeclaration{}, false
}

// encodeProperties returns the feature tags and the color slots
// written on the root.
func encodeProperties(properties []Property, strokeLayers bool, errMode ErrorMode) ([]string, Colors, error) {
	var (
		features []string
		colors   Colors
	)
	for _, prop := range properties {
		switch prop.Type {
		case FeatureProperty:
			if prop.Name != "" && !slices.Contains(features, prop.Name) {
				features = append(features, prop.Name)
			}
		case ColorProperty:
			hex, ok := svgcolor.Normalize(prop.Value)
			if !ok || prop.Name == "" || strings.ContainsAny(prop.Name, ",:") {
				err := fmt.Errorf("%w: color %q = %q", ErrInvalidProperty, prop.Name, prop.Value)
				if err = errMode.handleError(err); err != nil {
					return nil, nil, err
				}
				continue
			}
			colors.Set(prop.Name, hex)
		}
	}
	if strokeLayers {
		features = slices.DeleteFunc(features, func(f string) bool { return f == FeatureStroke })
		if !slices.Contains(features, FeatureStrokeLayers) {
			features = append(features, FeatureStrokeLayers)
		}
	}
	return features, colors, nil
}

// definitions collects the content of the layers <defs>,
// skipping repeated definitions.
type definitions struct {
	nodes []svgnode.Node
	seen  map[string]string // id -> markup
}

func (defs *definitions) add(nodes []svgnode.Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *svgnode.Element:
			if id, ok := n.Attrs.Get("id"); ok {
				markup := n.Build()
				if defs.seen[id] == markup {
					continue
				}
				if defs.seen == nil {
					defs.seen = make(map[string]string)
				}
				defs.seen[id] = markup
			}
			defs.nodes = append(defs.nodes, n)
		case svgnode.CharData:
			if strings.TrimSpace(string(n)) == "" {
				continue // formatting
			}
			defs.nodes = append(defs.nodes, n)
		default:
			defs.nodes = append(defs.nodes, n)
		}
	}
}
