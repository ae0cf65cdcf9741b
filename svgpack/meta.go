package svgpack

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/svgpack/svgnode"
	"golang.org/x/exp/slices"
)

// Meta reads the metadata of a pack, without looking at the
// layers content. ErrNotPack is returned for plain SVG and invalid input.
func Meta(container string) (*PackMetaData, error) {
	doc, err := parsePack(container)
	if err != nil {
		return nil, err
	}
	return readMeta(doc.Root()), nil
}

// parsePack parses `container`, and checks that it is a pack.
// The returned tree is owned by the caller.
func parsePack(container string) (*svgnode.Document, error) {
	if strings.TrimSpace(container) == "" {
		return nil, ErrNotPack
	}
	doc, err := svgnode.ParseString(container)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotPack, err)
	}
	root := doc.Root()
	if root.LocalName() != tagSVG {
		return nil, fmt.Errorf("%w: root element is <%s>", ErrNotPack, root.Name)
	}
	if root.Attrs.Value(attrName) == "" {
		return nil, ErrNotPack
	}
	return doc, nil
}

func readMeta(root *svgnode.Element) *PackMetaData {
	md := &PackMetaData{
		Name:     root.Attrs.Value(attrName),
		Features: splitList(root.Attrs.Value(attrFeatures)),
		Colors:   parseColors(root.Attrs.Value(attrColors)),
	}
	for _, g := range layerGroups(root) {
		for _, state := range splitList(g.Attrs.Value(attrState)) {
			if !slices.Contains(md.States, state) {
				md.States = append(md.States, state)
			}
		}
	}
	return md
}

// layerGroups returns the groups of a pack, in paint order.
func layerGroups(root *svgnode.Element) []*svgnode.Element {
	var out []*svgnode.Element
	for _, el := range root.Elements() {
		if el.Name == tagG {
			out = append(out, el)
		}
	}
	return out
}
