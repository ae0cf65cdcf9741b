package svgnode

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func parseFile(t *testing.T, filePath string) *Document {
	t.Helper()
	f, err := os.Open(filePath)
	if err != nil {
		t.Fatalf("can't open svg source: %s", err)
	}
	defer f.Close()
	doc, err := Parse(f)
	if err != nil {
		t.Fatalf("can't parse %s: %s", filePath, err)
	}
	return doc
}

func TestRoundTrip(t *testing.T) {
	for _, p := range []string{"lock", "encoded"} {
		doc := parseFile(t, "testdata/"+p+".svg")
		again, err := ParseString(doc.Build())
		if err != nil {
			t.Fatalf("%s: reparsing output: %s", p, err)
		}
		if diff := cmp.Diff(doc, again); diff != "" {
			t.Errorf("%s: round trip mismatch (-want +got):\n%s", p, diff)
		}
	}
}

func TestBuildPreservesOrder(t *testing.T) {
	for _, test := range []struct {
		in, out string
	}{
		{
			`<svg b="2" a="1"><g/><!--c--><path d="M0 0"></path></svg>`,
			`<svg b="2" a="1"><g/><!--c--><path d="M0 0"/></svg>`,
		},
		{
			`<svg title="a &amp; &quot;b&quot;">x &lt; y</svg>`,
			`<svg title="a &amp; &quot;b&quot;">x &lt; y</svg>`,
		},
		{
			"<?xml version=\"1.0\"?>\n<svg xmlns:xlink=\"http://www.w3.org/1999/xlink\"><use xlink:href=\"#a\"/></svg>\n",
			`<?xml version="1.0"?><svg xmlns:xlink="http://www.w3.org/1999/xlink"><use xlink:href="#a"/></svg>`,
		},
	} {
		doc, err := ParseString(test.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := doc.Build(); got != test.out {
			t.Errorf("expected %s, got %s", test.out, got)
		}
	}
}

func TestCharset(t *testing.T) {
	doc := parseFile(t, "testdata/encoded.svg")
	title := doc.Root().Elements()[0]
	if got := title.text(); got != "café & crème" {
		t.Errorf("unexpected title %q", got)
	}
}

func TestInvalid(t *testing.T) {
	for _, test := range []struct {
		in  string
		err error
	}{
		{"", ErrNoRoot},
		{"   ", ErrNoRoot},
		{"<svg></g>", ErrMalformed},
		{"<svg/><svg/>", ErrMalformed},
		{"<svg>", nil},
		{"<svg a=></svg>", nil},
	} {
		_, err := ParseString(test.in)
		if err == nil {
			t.Errorf("expected error for %q", test.in)
			continue
		}
		if test.err != nil && !errors.Is(err, test.err) {
			t.Errorf("for %q, expected %v, got %v", test.in, test.err, err)
		}
	}
}

func TestClone(t *testing.T) {
	doc := parseFile(t, "testdata/lock.svg")
	root := doc.Root()
	cp := root.Clone()
	if diff := cmp.Diff(root, cp); diff != "" {
		t.Fatalf("clone differs: %s", diff)
	}
	cp.Attrs.Set("viewBox", "0 0 1 1")
	cp.Elements()[1].Attrs.Delete("transform")
	cp.Children = cp.Children[:1]

	if root.Attrs.Value("viewBox") != "0 0 500 500" {
		t.Error("clone shares attributes with its source")
	}
	if !root.Elements()[1].Attrs.Has("transform") {
		t.Error("clone shares children with its source")
	}
}

func TestAttrs(t *testing.T) {
	var as Attrs
	as.Set("a", "1")
	as.Set("b", "2")
	as.Set("a", "3")
	as.Set("c", "4")
	if diff := cmp.Diff(Attrs{{"a", "3"}, {"b", "2"}, {"c", "4"}}, as); diff != "" {
		t.Errorf("unexpected Set result: %s", diff)
	}
	as.Delete("b", "missing")
	if diff := cmp.Diff(Attrs{{"a", "3"}, {"c", "4"}}, as); diff != "" {
		t.Errorf("unexpected Delete result: %s", diff)
	}
}

func TestFindAttrs(t *testing.T) {
	doc := parseFile(t, "testdata/lock.svg")
	root := doc.Root()
	matches := FindAttrs(root, "stroke", "stop-color")
	var values []string
	for _, m := range matches {
		values = append(values, m.Value)
		if got := root.At(m.Path).Attrs.Value(m.Name); got != m.Value {
			t.Errorf("path %v resolves to %q, expected %q", m.Path, got, m.Value)
		}
	}
	want := []string{"#08A88A", "#121331", "#121331", "#121331"}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Errorf("unexpected matches (-want +got):\n%s", diff)
	}

	if root.At(Path{0}) != nil {
		t.Error("path to a text node should resolve to nil")
	}
	if root.At(Path{42}) != nil {
		t.Error("out of range path should resolve to nil")
	}
	if root.At(nil) != root {
		t.Error("empty path should resolve to the root")
	}
}
