package svgpack

import (
	"strings"
	"testing"

	"github.com/benoitkugler/svgpack/svgnode"
)

func customizeRaw(t *testing.T, pack string, props IconProperties) string {
	t.Helper()
	out, err := CustomizeWith(pack, props, raw)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestCustomizeState(t *testing.T) {
	pack := packLock(t)

	base := svgOpen + `<g><path d="M2 2h20" stroke="#121331" stroke-width="4" fill="none"/></g></svg>`
	morph := svgOpen + `<g><circle cx="12" cy="12" r="4" fill="#08a88a" stroke="#121331" stroke-width="4"/></g></svg>`
	for _, test := range []struct {
		props IconProperties
		want  string
	}{
		{IconProperties{}, base},
		{IconProperties{State: "morph-single"}, morph},
		{IconProperties{State: "in-reveal"}, base}, // not packed as a state
		{IconProperties{State: "unknown"}, base},
		{IconProperties{Background: "#ffffff"}, base},
	} {
		if got := customizeRaw(t, pack, test.props); got != test.want {
			t.Errorf("%v: expected\n%s\ngot\n%s", test.props, test.want, got)
		}
	}

	layers, err := Unpack(pack)
	if err != nil {
		t.Fatal(err)
	}
	if len(layers) != 2 {
		t.Errorf("expected 2 layers, got %d", len(layers))
	}
}

func TestCustomizeEmpty(t *testing.T) {
	pack, err := Pack(lockSource, []Layer{
		{Content: layerB, State: []string{"morph-single"}},
	}, StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	// no base layer: the result is a valid, empty svg
	got := customizeRaw(t, pack, IconProperties{})
	if want := svgOpen[:len(svgOpen)-1] + "/>"; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestCustomizeStroke(t *testing.T) {
	pack := packLock(t)
	for _, test := range []struct {
		stroke string
		want   string
	}{
		{"", "4"},
		{"regular", "4"},
		{"2", "4"},
		{"bold", "6"},
		{"3", "6"},
		{"5", "6"},
		{"light", "2"},
		{"1", "2"},
		{"0", "2"},
		{"-4", "2"},
		{"heavy", "4"},
	} {
		out := customizeRaw(t, pack, IconProperties{Stroke: test.stroke})
		for _, m := range svgnode.FindAttrs(parseRoot(t, out), strokeWidthAttr) {
			if m.Value != test.want {
				t.Errorf("stroke %q: expected width %s, got %s", test.stroke, test.want, m.Value)
			}
		}
	}

	// widths are only scaled for packs advertising the stroke feature
	pack, err := Pack(testSource{name: "plain"}, []Layer{{Content: layerA}}, StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if out := customizeRaw(t, pack, IconProperties{Stroke: "bold"}); !strings.Contains(out, `stroke-width="4"`) {
		t.Errorf("unexpected scaling in %s", out)
	}
}

func TestCustomizeStrokeStyle(t *testing.T) {
	pack, err := Pack(lockSource, []Layer{
		{Content: svgOpen + `<path d="M0 0" style="fill:none; stroke:#121331; stroke-width:2.5px"/></svg>`},
	}, StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	out := customizeRaw(t, pack, IconProperties{Stroke: "bold", Colors: map[string]string{"primary": "rgb(255, 0, 0)"}})
	path := parseRoot(t, out).Elements()[0].Elements()[0]
	if got, want := path.Attrs.Value(attrStyle), "fill:none;stroke:#ff0000;stroke-width:3.75px"; got != want {
		t.Errorf("expected style %s, got %s", want, got)
	}
}

func TestCustomizeStrokeLayers(t *testing.T) {
	pack, err := Pack(lockSource, []Layer{
		{Content: svgOpen + `<path d="M1 1" stroke-width="4"/></svg>`, Stroke: Light},
		{Content: svgOpen + `<path d="M2 2" stroke-width="4"/></svg>`},
		{Content: svgOpen + `<path d="M3 3" stroke-width="4"/></svg>`, Stroke: Bold},
	}, StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		stroke string
		want   string
	}{
		{"", "M2 2"},
		{"regular", "M2 2"},
		{"light", "M1 1"},
		{"0", "M1 1"},
		{"bold", "M3 3"},
		{"7", "M3 3"},
	} {
		root := parseRoot(t, customizeRaw(t, pack, IconProperties{Stroke: test.stroke}))
		paths := svgnode.FindAttrs(root, "d")
		if len(paths) != 1 || paths[0].Value != test.want {
			t.Errorf("stroke %q: expected %s, got %v", test.stroke, test.want, paths)
		}
		// layers are selected, not scaled
		for _, m := range svgnode.FindAttrs(root, strokeWidthAttr) {
			if m.Value != "4" {
				t.Errorf("stroke %q: unexpected width %s", test.stroke, m.Value)
			}
		}
	}
}

func TestCustomizeColors(t *testing.T) {
	pack, err := Pack(lockSource, []Layer{{Content: svgOpen +
		`<defs><linearGradient id="g"><stop offset="0" stop-color="#08A88A"/></linearGradient></defs>` +
		`<path d="M0 0" stroke="#121331" fill="#08a88a"/>` +
		`<path d="M1 1" stroke="#654321" fill="url(#g)"/>` +
		`</svg>`,
	}}, StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}

	out := customizeRaw(t, pack, IconProperties{Colors: map[string]string{
		"primary":  "blue",
		"tertiary": "#ff0000", // undeclared
	}})
	want := svgOpen +
		`<g><path d="M0 0" stroke="#0000ff" fill="#08a88a"/>` +
		`<path d="M1 1" stroke="#654321" fill="url(#g)"/></g>` +
		`<defs><linearGradient id="g"><stop offset="0" stop-color="#08A88A"/></linearGradient></defs>` +
		`</svg>`
	if out != want {
		t.Errorf("expected\n%s\ngot\n%s", want, out)
	}

	out = customizeRaw(t, pack, IconProperties{Colors: map[string]string{
		"secondary": "#FFEEDD",
		"primary":   "not a color",
	}})
	want = svgOpen +
		`<g><path d="M0 0" stroke="#121331" fill="#ffeedd"/>` +
		`<path d="M1 1" stroke="#654321" fill="url(#g)"/></g>` +
		`<defs><linearGradient id="g"><stop offset="0" stop-color="#ffeedd"/></linearGradient></defs>` +
		`</svg>`
	if out != want {
		t.Errorf("expected\n%s\ngot\n%s", want, out)
	}
}

func TestCustomizeOptimized(t *testing.T) {
	pack := packLock(t)
	out, err := Customize(pack, IconProperties{State: "morph-single", Colors: map[string]string{"secondary": "#123456"}})
	if err != nil {
		t.Fatal(err)
	}
	root := parseRoot(t, out)
	for _, name := range packAttrs {
		if root.Attrs.Has(name) {
			t.Errorf("unexpected attribute %s in %s", name, out)
		}
	}
	if !strings.Contains(out, "#123456") || strings.Contains(out, "M2 2") {
		t.Errorf("unexpected output %s", out)
	}
}

func TestSplitUnit(t *testing.T) {
	for _, test := range []struct {
		in, number, unit string
	}{
		{"4", "4", ""},
		{" 2.5px", "2.5", "px"},
		{"1e2", "1e2", ""},
		{"50%", "50", "%"},
		{"none", "", "none"},
	} {
		number, unit := splitUnit(test.in)
		if number != test.number || unit != test.unit {
			t.Errorf("%q: expected %q %q, got %q %q", test.in, test.number, test.unit, number, unit)
		}
	}
}
