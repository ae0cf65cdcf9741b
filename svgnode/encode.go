package svgnode

import (
	"strings"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// Build serializes the document. Elements without children
// are written as self closing tags.
func (doc *Document) Build() string {
	var sb strings.Builder
	for _, n := range doc.Nodes {
		writeNode(&sb, n)
	}
	return sb.String()
}

// Build serializes the element and its subtree.
func (el *Element) Build() string {
	var sb strings.Builder
	writeNode(&sb, el)
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Element:
		sb.WriteByte('<')
		sb.WriteString(n.Name)
		for _, attr := range n.Attrs {
			sb.WriteByte(' ')
			sb.WriteString(attr.Name)
			sb.WriteString(`="`)
			attrEscaper.WriteString(sb, attr.Value)
			sb.WriteByte('"')
		}
		if len(n.Children) == 0 {
			sb.WriteString("/>")
			return
		}
		sb.WriteByte('>')
		for _, c := range n.Children {
			writeNode(sb, c)
		}
		sb.WriteString("</")
		sb.WriteString(n.Name)
		sb.WriteByte('>')
	case CharData:
		textEscaper.WriteString(sb, string(n))
	case Comment:
		sb.WriteString("<!--")
		sb.WriteString(string(n))
		sb.WriteString("-->")
	case ProcInst:
		sb.WriteString("<?")
		sb.WriteString(n.Target)
		if n.Inst != "" {
			sb.WriteByte(' ')
			sb.WriteString(n.Inst)
		}
		sb.WriteString("?>")
	case Directive:
		sb.WriteString("<!")
		sb.WriteString(string(n))
		sb.WriteByte('>')
	}
}
