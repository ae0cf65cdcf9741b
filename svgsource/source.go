// Reads the properties (colors and features) and states declared by
// an animation description, to be used as svgpack.Source.
//
// Two formats are supported: Lottie animations, where properties are the
// controls of a layer named "controls" and states are markers, and YAML
// manifests, for icons whose animation is not available.
package svgsource

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/benoitkugler/svgpack/svgpack"
)

var errEmptySource = errors.New("empty animation source")

// Icon holds the declarations of an animation source.
type Icon struct {
	name       string
	properties []svgpack.Property
	states     []svgpack.StateDeclaration
}

var _ svgpack.Source = (*Icon)(nil) // assert interface conformance

// NewIcon returns a source with the given declarations.
func NewIcon(name string, properties []svgpack.Property, states []svgpack.StateDeclaration) *Icon {
	return &Icon{name: name, properties: properties, states: states}
}

func (ic *Icon) Name() string                       { return ic.name }
func (ic *Icon) Properties() []svgpack.Property     { return ic.properties }
func (ic *Icon) States() []svgpack.StateDeclaration { return ic.states }

// Load detects the format of `data` (Lottie JSON or YAML manifest)
// and reads its declarations.
func Load(data []byte) (*Icon, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errEmptySource
	}
	if trimmed[0] == '{' && isLottie(trimmed) {
		return LoadLottie(trimmed)
	}
	return LoadManifest(trimmed)
}

// ReadFile reads the animation source stored in the named file.
func ReadFile(sourceFile string) (*Icon, error) {
	data, err := os.ReadFile(sourceFile)
	if err != nil {
		return nil, err
	}
	ic, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", sourceFile, err)
	}
	return ic, nil
}

// ExtractProperties returns the color and feature declarations of `src`.
func ExtractProperties(src svgpack.Source) []svgpack.Property {
	if src == nil {
		return nil
	}
	return src.Properties()
}

// ReadStates returns the state declarations of `src`.
func ReadStates(src svgpack.Source) []svgpack.StateDeclaration {
	if src == nil {
		return nil
	}
	return src.States()
}

// addState appends a declaration, ignoring empty and duplicated names.
func (ic *Icon) addState(name string, isDefault bool) {
	if name == "" {
		return
	}
	for i, s := range ic.states {
		if s.Name == name {
			ic.states[i].Default = ic.states[i].Default || isDefault
			return
		}
	}
	ic.states = append(ic.states, svgpack.StateDeclaration{Name: name, Default: isDefault})
}

// ensureDefault marks the first state as default, if none is.
func (ic *Icon) ensureDefault() {
	if len(ic.states) == 0 {
		return
	}
	for i, s := range ic.states {
		if s.Default {
			// keep only the first default
			for j := i + 1; j < len(ic.states); j++ {
				ic.states[j].Default = false
			}
			return
		}
	}
	ic.states[0].Default = true
}
