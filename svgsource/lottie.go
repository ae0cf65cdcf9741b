package svgsource

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/benoitkugler/svgpack/svgcolor"
	"github.com/benoitkugler/svgpack/svgpack"
)

const (
	controlsLayer = "controls"
	defaultMarker = "default:"
)

// Lottie effect types used by controls
const (
	effectSlider   = 0
	effectColor    = 2
	effectCheckbox = 7
)

type (
	lottieAnimation struct {
		Name    string         `json:"nm"`
		Layers  []lottieLayer  `json:"layers"`
		Markers []lottieMarker `json:"markers"`
	}

	lottieLayer struct {
		Name    string         `json:"nm"`
		Effects []lottieEffect `json:"ef"`
	}

	// lottieEffect is either a control group (with nested effects)
	// or a single control (with a value)
	lottieEffect struct {
		Name    string         `json:"nm"`
		Type    int            `json:"ty"`
		Effects []lottieEffect `json:"ef"`
		Value   *lottieValue   `json:"v"`
	}

	lottieValue struct {
		K json.RawMessage `json:"k"`
	}

	lottieKeyframe struct {
		S []float64 `json:"s"`
	}

	lottieMarker struct {
		Comment  string  `json:"cm"`
		Time     float64 `json:"tm"`
		Duration float64 `json:"dr"`
	}
)

// isLottie returns true for JSON objects with a "layers" member.
func isLottie(data []byte) bool {
	var probe struct {
		Layers json.RawMessage `json:"layers"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return len(probe.Layers) != 0
}

// floats returns the static value, or the first keyframe
// of an animated one.
func (v *lottieValue) floats() ([]float64, bool) {
	if v == nil || len(v.K) == 0 {
		return nil, false
	}
	var number float64
	if err := json.Unmarshal(v.K, &number); err == nil {
		return []float64{number}, true
	}
	var numbers []float64
	if err := json.Unmarshal(v.K, &numbers); err == nil {
		return numbers, true
	}
	var keyframes []lottieKeyframe
	if err := json.Unmarshal(v.K, &keyframes); err == nil && len(keyframes) != 0 {
		return keyframes[0].S, len(keyframes[0].S) != 0
	}
	return nil, false
}

// LoadLottie reads the declarations of a Lottie animation.
func LoadLottie(data []byte) (*Icon, error) {
	var anim lottieAnimation
	if err := json.Unmarshal(data, &anim); err != nil {
		return nil, fmt.Errorf("invalid lottie animation: %w", err)
	}

	ic := &Icon{name: anim.Name}
	for _, layer := range anim.Layers {
		if !strings.EqualFold(layer.Name, controlsLayer) {
			continue
		}
		for _, effect := range layer.Effects {
			ic.addControl(effect)
		}
	}
	for _, marker := range anim.Markers {
		name := strings.TrimSpace(marker.Comment)
		isDefault := strings.HasPrefix(name, defaultMarker)
		ic.addState(strings.TrimSpace(strings.TrimPrefix(name, defaultMarker)), isDefault)
	}
	ic.ensureDefault()
	return ic, nil
}

func (ic *Icon) addControl(effect lottieEffect) {
	name := strings.TrimSpace(effect.Name)
	if name == "" {
		return
	}
	control := effect
	if len(effect.Effects) != 0 {
		control = effect.Effects[0]
	}
	values, ok := control.Value.floats()
	switch control.Type {
	case effectColor:
		if !ok || len(values) < 3 {
			return
		}
		c := svgcolor.FromFloats(values[0], values[1], values[2])
		ic.properties = append(ic.properties, svgpack.Property{Name: name, Type: svgpack.ColorProperty, Value: svgcolor.Hex(c)})
	case effectCheckbox:
		if !ok || len(values) == 0 || values[0] == 0 {
			return
		}
		ic.properties = append(ic.properties, svgpack.Property{Name: name, Type: svgpack.FeatureProperty})
	case effectSlider:
		ic.properties = append(ic.properties, svgpack.Property{Name: name, Type: svgpack.FeatureProperty})
	}
}
