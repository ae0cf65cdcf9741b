// Optimizes SVG documents before they are handed to consumers:
// ids are made unique so that several documents can be inlined
// in the same page, and the markup is minified.
package svgopt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/benoitkugler/svgpack/svgnode"
	"github.com/google/uuid"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/svg"
)

const svgMimetype = "image/svg+xml"

// Options controls the optimization passes.
type Options struct {
	// PrefixIDs rewrites every id, and the references to it,
	// with a prefix unique to the call.
	PrefixIDs bool
	// Prefix is used instead of a fresh unique prefix when not empty.
	Prefix string
	// Minify runs the minifier on the output.
	Minify bool
	// Precision is the number of significant digits kept by the minifier,
	// 0 meaning no rounding.
	Precision int
}

// Default is used by the pack decoder and the customizer.
var Default = Options{PrefixIDs: true, Minify: true}

// Optimize parses `doc`, applies the passes selected by `opts`
// and returns the serialized result.
func Optimize(doc string, opts Options) (string, error) {
	tree, err := svgnode.ParseString(doc)
	if err != nil {
		return "", fmt.Errorf("optimizing svg: %w", err)
	}
	return OptimizeTree(tree, opts)
}

// OptimizeTree is the same as Optimize, for an already parsed document.
// The given tree is modified in place.
func OptimizeTree(tree *svgnode.Document, opts Options) (string, error) {
	if opts.PrefixIDs {
		prefix := opts.Prefix
		if prefix == "" {
			prefix = UniquePrefix()
		}
		if root := tree.Root(); root != nil {
			PrefixIDs(root, prefix)
		}
	}
	out := tree.Build()
	if !opts.Minify {
		return out, nil
	}
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add(svgMimetype, &svg.Minifier{Precision: opts.Precision})
	out, err := m.String(svgMimetype, out)
	if err != nil {
		return "", fmt.Errorf("minifying svg: %w", err)
	}
	return out, nil
}

// UniquePrefix returns a new prefix, valid at the start of an XML name.
func UniquePrefix() string {
	return "i" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8] + "-"
}

var urlRef = regexp.MustCompile(`url\(\s*(['"]?)#([^'")\s]+)(['"]?)\s*\)`)

// PrefixIDs renames every id defined below `root`, and updates
// the references to them: href and xlink:href attributes, url(#id) values
// in attributes and inline styles, and <style> content.
// References to unknown ids are left untouched.
func PrefixIDs(root *svgnode.Element, prefix string) {
	ids := map[string]bool{}
	svgnode.Walk(root, func(el *svgnode.Element, _ svgnode.Path) {
		if id, ok := el.Attrs.Get("id"); ok && id != "" {
			ids[id] = true
		}
	})
	if len(ids) == 0 {
		return
	}

	rewriteURLs := func(v string) string {
		return urlRef.ReplaceAllStringFunc(v, func(match string) string {
			sub := urlRef.FindStringSubmatch(match)
			if !ids[sub[2]] {
				return match
			}
			return "url(" + sub[1] + "#" + prefix + sub[2] + sub[3] + ")"
		})
	}

	svgnode.Walk(root, func(el *svgnode.Element, _ svgnode.Path) {
		for i, attr := range el.Attrs {
			switch attr.Name {
			case "id":
				if ids[attr.Value] {
					el.Attrs[i].Value = prefix + attr.Value
				}
			case "href", "xlink:href":
				if ref := strings.TrimPrefix(attr.Value, "#"); ref != attr.Value && ids[ref] {
					el.Attrs[i].Value = "#" + prefix + ref
				}
			default:
				if strings.Contains(attr.Value, "url(") {
					el.Attrs[i].Value = rewriteURLs(attr.Value)
				}
			}
		}
		if el.LocalName() == "style" {
			for i, c := range el.Children {
				if cd, ok := c.(svgnode.CharData); ok {
					el.Children[i] = svgnode.CharData(rewriteURLs(string(cd)))
				}
			}
		}
	})
}
