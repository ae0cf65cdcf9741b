package svgnode

// Path locates an element inside a tree, as the chain of
// child indices (into Children, non element nodes included)
// starting from the root. The empty path is the root itself.
type Path []int

// At resolves the path against `el`, or returns nil if
// it does not point to an element.
func (el *Element) At(path Path) *Element {
	current := el
	for _, index := range path {
		if current == nil || index < 0 || index >= len(current.Children) {
			return nil
		}
		current, _ = current.Children[index].(*Element)
	}
	return current
}

// Walk calls `fn` for `root` and every element below it, in document order.
// The given path is only valid during the call; copy it to keep it.
func Walk(root *Element, fn func(el *Element, path Path)) {
	walk(root, Path{}, fn)
}

func walk(el *Element, path Path, fn func(*Element, Path)) {
	fn(el, path)
	for i, c := range el.Children {
		if ce, ok := c.(*Element); ok {
			walk(ce, append(path, i), fn)
		}
	}
}

// Match is an attribute found by FindAttrs.
type Match struct {
	Path  Path   // owner of the attribute, relative to the search root
	Name  string // attribute name
	Value string // attribute value at search time
}

// FindAttrs returns, in document order, every attribute of `root`
// and its descendants whose name is one of `names`.
func FindAttrs(root *Element, names ...string) []Match {
	var out []Match
	Walk(root, func(el *Element, path Path) {
		for _, attr := range el.Attrs {
			for _, name := range names {
				if attr.Name == name {
					out = append(out, Match{Path: append(Path(nil), path...), Name: attr.Name, Value: attr.Value})
					break
				}
			}
		}
	})
	return out
}
