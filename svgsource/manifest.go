package svgsource

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/benoitkugler/svgpack/svgpack"
)

// manifest is the YAML description of an icon:
//
//	name: lock
//	features: [stroke]
//	colors:
//	  primary: "#121331"
//	  secondary: "#08a88a"
//	states:
//	  - name: in-reveal
//	    default: true
//	  - name: morph-single
type manifest struct {
	Name     string    `yaml:"name"`
	Features []string  `yaml:"features"`
	Colors   yaml.Node `yaml:"colors"` // mapping, kept as a node to preserve order
	States   []struct {
		Name    string `yaml:"name"`
		Default bool   `yaml:"default"`
	} `yaml:"states"`
}

// LoadManifest reads the declarations of a YAML manifest.
func LoadManifest(data []byte) (*Icon, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	ic := &Icon{name: m.Name}
	for _, f := range m.Features {
		if f != "" {
			ic.properties = append(ic.properties, svgpack.Property{Name: f, Type: svgpack.FeatureProperty})
		}
	}
	switch {
	case m.Colors.Kind == 0, m.Colors.ShortTag() == "!!null": // no colors
	case m.Colors.Kind == yaml.MappingNode:
		for i := 0; i+1 < len(m.Colors.Content); i += 2 {
			key, value := m.Colors.Content[i], m.Colors.Content[i+1]
			if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("invalid manifest: line %d: color slots must be strings", key.Line)
			}
			ic.properties = append(ic.properties, svgpack.Property{Name: key.Value, Type: svgpack.ColorProperty, Value: value.Value})
		}
	default:
		return nil, fmt.Errorf("invalid manifest: line %d: colors must be a mapping", m.Colors.Line)
	}
	for _, s := range m.States {
		ic.addState(s.Name, s.Default)
	}
	ic.ensureDefault()
	return ic, nil
}
