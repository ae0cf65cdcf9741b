// Provides an order preserving XML node tree for SVG documents.
// Documents are parsed into explicit node variants (elements, character data,
// comments, ...), can be transformed in place on an owned copy,
// and are written back with element, attribute and child order untouched.
package svgnode

import "strings"

// Node is one of *Element, CharData, Comment, ProcInst or Directive.
type Node interface {
	isNode()
}

type (
	// Element is a tag with its ordered attributes and children.
	Element struct {
		Name     string // qualified name, as written (for instance "svg" or "sodipodi:namedview")
		Attrs    Attrs
		Children []Node
	}

	// CharData is text content, with entities already decoded.
	CharData string

	// Comment is the content of a <!-- --> node.
	Comment string

	// ProcInst is a processing instruction, such as the XML declaration.
	ProcInst struct {
		Target string
		Inst   string
	}

	// Directive is the content of a <! > node, such as a DOCTYPE.
	Directive string
)

func (*Element) isNode() {}
func (CharData) isNode()  {}
func (Comment) isNode()   {}
func (ProcInst) isNode()  {}
func (Directive) isNode() {}

// Attr is a single attribute. Name is the qualified name, as written.
type Attr struct {
	Name, Value string
}

// Attrs is an ordered attribute list.
type Attrs []Attr

// Get returns the value of the attribute `name`.
func (as Attrs) Get(name string) (string, bool) {
	for _, a := range as {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Value returns the value of the attribute `name`, or an empty string.
func (as Attrs) Value(name string) string {
	v, _ := as.Get(name)
	return v
}

// Has returns true if the attribute `name` is present.
func (as Attrs) Has(name string) bool {
	_, ok := as.Get(name)
	return ok
}

// Set replaces the value of an existing attribute, keeping its position,
// or appends a new one.
func (as *Attrs) Set(name, value string) {
	for i, a := range *as {
		if a.Name == name {
			(*as)[i].Value = value
			return
		}
	}
	*as = append(*as, Attr{Name: name, Value: value})
}

// Delete removes the attributes named `names`, preserving the order
// of the others.
func (as *Attrs) Delete(names ...string) {
	out := (*as)[:0]
	for _, a := range *as {
		keep := true
		for _, n := range names {
			if a.Name == n {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, a)
		}
	}
	*as = out
}

// Clone returns a copy of the list.
func (as Attrs) Clone() Attrs {
	if as == nil {
		return nil
	}
	return append(Attrs(nil), as...)
}

// NewElement returns an element with the given name and attributes.
func NewElement(name string, attrs ...Attr) *Element {
	return &Element{Name: name, Attrs: attrs}
}

// LocalName returns the name without its namespace prefix.
func (el *Element) LocalName() string {
	if i := strings.IndexByte(el.Name, ':'); i >= 0 {
		return el.Name[i+1:]
	}
	return el.Name
}

// Clone returns a deep copy of the element: the copy shares no
// attribute list or child slice with `el`.
func (el *Element) Clone() *Element {
	if el == nil {
		return nil
	}
	out := &Element{Name: el.Name, Attrs: el.Attrs.Clone()}
	if el.Children != nil {
		out.Children = CloneNodes(el.Children)
	}
	return out
}

// CloneNodes returns a deep copy of the given nodes.
func CloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		switch n := n.(type) {
		case *Element:
			out[i] = n.Clone()
		default: // other variants are values
			out[i] = n
		}
	}
	return out
}

// Elements returns the element children, skipping text, comments and
// other non element nodes.
func (el *Element) Elements() []*Element {
	var out []*Element
	for _, c := range el.Children {
		if ce, ok := c.(*Element); ok {
			out = append(out, ce)
		}
	}
	return out
}

// Append adds nodes at the end of the children.
func (el *Element) Append(nodes ...Node) {
	el.Children = append(el.Children, nodes...)
}

// IsBlank returns true if the element has no element child and
// no significant (non whitespace) text.
func (el *Element) IsBlank() bool {
	for _, c := range el.Children {
		switch c := c.(type) {
		case *Element:
			return false
		case CharData:
			if strings.TrimSpace(string(c)) != "" {
				return false
			}
		}
	}
	return true
}

// text returns the concatenation of the direct character data children.
func (el *Element) text() string {
	var sb strings.Builder
	for _, c := range el.Children {
		if cd, ok := c.(CharData); ok {
			sb.WriteString(string(cd))
		}
	}
	return sb.String()
}

// Document is a parsed XML document: its top level nodes, in order.
// A valid document has exactly one root element.
type Document struct {
	Nodes []Node
}

// Root returns the root element, or nil.
func (doc *Document) Root() *Element {
	for _, n := range doc.Nodes {
		if el, ok := n.(*Element); ok {
			return el
		}
	}
	return nil
}
