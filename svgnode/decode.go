package svgnode

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

var (
	// ErrNoRoot is returned when the input has no root element.
	ErrNoRoot = errors.New("invalid xml: no root element")
	// ErrMalformed is returned for unbalanced or misplaced tags.
	ErrMalformed = errors.New("invalid xml: malformed tree")
)

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Parse reads an XML document from the given io.Reader.
// Namespace prefixes are kept as written, so that the output of Build
// can be used as is by any SVG consumer.
func Parse(stream io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	decoder.Entity = xml.HTMLEntity

	doc := new(Document)
	var (
		stack   []*Element // open elements
		seenTag bool
	)
	// appends to the current parent or to the document
	push := func(n Node) {
		if len(stack) == 0 {
			doc.Nodes = append(doc.Nodes, n)
			return
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, n)
	}
	for {
		t, err := decoder.RawToken()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			if len(stack) == 0 && seenTag {
				return nil, fmt.Errorf("%w: second root element <%s>", ErrMalformed, qualifiedName(se.Name))
			}
			seenTag = true
			el := &Element{Name: qualifiedName(se.Name)}
			if len(se.Attr) != 0 {
				el.Attrs = make(Attrs, len(se.Attr))
				for i, attr := range se.Attr {
					el.Attrs[i] = Attr{Name: qualifiedName(attr.Name), Value: attr.Value}
				}
			}
			push(el)
			stack = append(stack, el)
		case xml.EndElement:
			name := qualifiedName(se.Name)
			if len(stack) == 0 || stack[len(stack)-1].Name != name {
				return nil, fmt.Errorf("%w: unexpected closing tag </%s>", ErrMalformed, name)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 && strings.TrimSpace(string(se)) == "" {
				continue // formatting between top level nodes
			}
			push(CharData(se))
		case xml.Comment:
			push(Comment(se))
		case xml.ProcInst:
			inst := string(se.Inst)
			if se.Target == "xml" {
				inst = utf8Declaration(inst)
			}
			push(ProcInst{Target: se.Target, Inst: inst})
		case xml.Directive:
			push(Directive(se))
		}
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: unclosed tag <%s>", ErrMalformed, stack[len(stack)-1].Name)
	}
	if !seenTag {
		return nil, ErrNoRoot
	}
	return doc, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// utf8Declaration rewrites the encoding of an XML declaration:
// the tree always holds (and Build always writes) UTF-8 text.
func utf8Declaration(inst string) string {
	i := strings.Index(inst, "encoding=")
	if i < 0 || len(inst) < i+len("encoding=")+1 {
		return inst
	}
	start := i + len("encoding=")
	quote := inst[start]
	end := strings.IndexByte(inst[start+1:], quote)
	if end < 0 {
		return inst
	}
	return inst[:start+1] + "UTF-8" + inst[start+1+end:]
}
