package svgpack

import (
	"fmt"

	"github.com/benoitkugler/svgpack/svgnode"
	"github.com/benoitkugler/svgpack/svgopt"
)

// Unpack splits a pack into the layers it was built from, in packing order.
// Each layer is a standalone SVG, optimized with unique ids.
// ErrNotPack is returned (with no layers) for invalid input.
func Unpack(container string) ([]Layer, error) {
	return UnpackWith(container, svgopt.Default)
}

// UnpackWith is the same as Unpack, with custom optimization options.
func UnpackWith(container string, opts svgopt.Options) ([]Layer, error) {
	doc, err := parsePack(container)
	if err != nil {
		return nil, err
	}
	root := doc.Root()

	// shared by every layer: plain root attributes and definitions
	base := &svgnode.Element{Name: root.Name, Attrs: root.Attrs.Clone()}
	base.Attrs.Delete(packAttrs...)
	for _, el := range root.Elements() {
		if el.Name == tagDefs {
			base.Append(el.Clone())
		}
	}

	groups := layerGroups(root)
	out := make([]Layer, 0, len(groups))
	for i, g := range groups {
		layerRoot := base.Clone()
		layerRoot.Append(svgnode.CloneNodes(g.Children)...)
		content, err := svgopt.OptimizeTree(&svgnode.Document{Nodes: []svgnode.Node{layerRoot}}, opts)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		out = append(out, Layer{
			Content: content,
			State:   splitList(g.Attrs.Value(attrState)),
			Stroke:  parseStroke(g.Attrs.Value(attrStroke)),
		})
	}
	return out, nil
}
