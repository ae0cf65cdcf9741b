package svgopt

import (
	"strings"
	"testing"

	"github.com/benoitkugler/svgpack/svgnode"
)

const gradientIcon = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 24 24">` +
	`<defs><linearGradient id="g"><stop offset="0" stop-color="#123456"/></linearGradient>` +
	`<mask id="m"><rect width="24" height="24" fill="#ffffff"/></mask></defs>` +
	`<style>.a{fill:url(#g)}</style>` +
	`<path id="p" d="M0 0L24 24" fill="url(#g)" mask="url('#m')" style="stroke:url(#g)"/>` +
	`<use xlink:href="#p"/><use href="#p"/><use href="#other"/><rect fill="url(#unknown)"/></svg>`

func TestPrefixIDs(t *testing.T) {
	got, err := Optimize(gradientIcon, Options{PrefixIDs: true, Prefix: "x-"})
	if err != nil {
		t.Fatal(err)
	}
	want := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 24 24">` +
		`<defs><linearGradient id="x-g"><stop offset="0" stop-color="#123456"/></linearGradient>` +
		`<mask id="x-m"><rect width="24" height="24" fill="#ffffff"/></mask></defs>` +
		`<style>.a{fill:url(#x-g)}</style>` +
		`<path id="x-p" d="M0 0L24 24" fill="url(#x-g)" mask="url('#x-m')" style="stroke:url(#x-g)"/>` +
		`<use xlink:href="#x-p"/><use href="#x-p"/><use href="#other"/><rect fill="url(#unknown)"/></svg>`
	if got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestUniquePrefix(t *testing.T) {
	seen := map[string]bool{}
	for range [50]int{} {
		p := UniquePrefix()
		if seen[p] {
			t.Fatalf("duplicate prefix %s", p)
		}
		seen[p] = true
		if p[0] < 'a' || p[0] > 'z' {
			t.Errorf("prefix %s is not a valid name start", p)
		}
	}
}

func TestDefaultOptimize(t *testing.T) {
	out1, err := Optimize(gradientIcon, Default)
	if err != nil {
		t.Fatal(err)
	}
	out2, err := Optimize(gradientIcon, Default)
	if err != nil {
		t.Fatal(err)
	}
	ids := func(s string) []string {
		doc, err := svgnode.ParseString(s)
		if err != nil {
			t.Fatalf("minified output is not valid xml: %s", err)
		}
		var out []string
		svgnode.Walk(doc.Root(), func(el *svgnode.Element, _ svgnode.Path) {
			if id, ok := el.Attrs.Get("id"); ok {
				out = append(out, id)
			}
		})
		return out
	}
	ids1, ids2 := ids(out1), ids(out2)
	if len(ids1) != 3 || len(ids2) != 3 {
		t.Fatalf("unexpected ids %v %v", ids1, ids2)
	}
	for i := range ids1 {
		if ids1[i] == ids2[i] {
			t.Errorf("id %s is not unique across calls", ids1[i])
		}
		if !strings.HasSuffix(ids1[i], []string{"g", "m", "p"}[i]) {
			t.Errorf("unexpected id %s", ids1[i])
		}
	}
}

func TestOptimizeInvalid(t *testing.T) {
	if _, err := Optimize("<svg>", Default); err == nil {
		t.Error("expected error for invalid input")
	}
}
