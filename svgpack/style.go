package svgpack

import "strings"

// declaration is one property of an inline style attribute.
type declaration struct {
	name, value string
}

// parseStyle splits the content of a style attribute.
// Pairs without a colon are dropped.
func parseStyle(style string) []declaration {
	var out []declaration
	for _, pair := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		out = append(out, declaration{name: k, value: strings.TrimSpace(v)})
	}
	return out
}

func formatStyle(decls []declaration) string {
	var sb strings.Builder
	for i, d := range decls {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(d.name)
		sb.WriteByte(':')
		sb.WriteString(d.value)
	}
	return sb.String()
}

// rewriteStyle calls `fn` for each declaration named in `names`,
// and returns the updated style. `changed` is false when `fn` returned
// the original value for every declaration, in which case `style` is
// returned untouched.
func rewriteStyle(style string, names []string, fn func(name, value string) string) (out string, changed bool) {
	decls := parseStyle(style)
	for i, d := range decls {
		for _, name := range names {
			if d.name != name {
				continue
			}
			if v := fn(d.name, d.value); v != d.value {
				decls[i].value = v
				changed = true
			}
			break
		}
	}
	if !changed {
		return style, false
	}
	return formatStyle(decls), true
}
