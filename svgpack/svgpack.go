// Provides encoding and decoding of icon packs:
// single SVG documents bundling several layers (state and stroke
// variants) of one icon, plus metadata stored as attributes of the root
// element. See Pack, Meta, Unpack and Customize.
package svgpack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

var (
	// ErrNotPack is returned when the input is not a valid pack:
	// unparseable, or without a data-name root attribute.
	ErrNotPack = errors.New("svg is not an icon pack")
	// ErrNoLayers is returned by Pack when no layer could be packed.
	ErrNoLayers = errors.New("no valid layer to pack")
	// ErrInvalidLayer describes a layer which is not a plain, non empty svg.
	ErrInvalidLayer = errors.New("invalid layer")
	// ErrUnmatchedState describes a layer matching no declared state.
	ErrUnmatchedState = errors.New("layer matches no declared state")
	// ErrInvalidProperty describes a declared property which can't be encoded.
	ErrInvalidProperty = errors.New("invalid property")
)

// ErrorMode determines how Pack handles the layers and properties it
// has to skip.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips and logs a warning.
	WarnErrorMode
	// StrictErrorMode aborts with an error.
	StrictErrorMode
)

func (mode ErrorMode) String() string {
	switch mode {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return fmt.Sprintf("<ErrorMode %d>", mode)
	}
}

// ParseErrorMode is the inverse of ErrorMode.String.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return IgnoreErrorMode, nil
	case "warn":
		return WarnErrorMode, nil
	case "strict":
		return StrictErrorMode, nil
	}
	return 0, fmt.Errorf("unknown error mode %q", s)
}

// handleError returns `err` in strict mode, and nil otherwise.
func (mode ErrorMode) handleError(err error) error {
	switch mode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		log.Warn("skipping", "err", err)
	}
	return nil
}

// StrokeLevel is a discrete line weight. The zero value means
// that no weight is given, which is equivalent to Regular.
type StrokeLevel uint8

const (
	Light   StrokeLevel = 1
	Regular StrokeLevel = 2 // default
	Bold    StrokeLevel = 3
)

func (s StrokeLevel) String() string {
	switch s {
	case 0:
		return ""
	case Light:
		return "light"
	case Regular:
		return "regular"
	case Bold:
		return "bold"
	default:
		return fmt.Sprintf("<StrokeLevel %d>", s)
	}
}

// Layer is one packable variant of an icon.
type Layer struct {
	Content string      // SVG text
	State   []string    // empty for the default (base) layer
	Stroke  StrokeLevel // 0 when not specified
}

// PropertyType is the kind of a declared property.
type PropertyType string

const (
	ColorProperty   PropertyType = "color"
	FeatureProperty PropertyType = "feature"
)

// Property is a color slot or feature flag declared by an animation source.
type Property struct {
	Name  string
	Type  PropertyType
	Value string // color value for ColorProperty
}

// StateDeclaration is a named state of an animation source.
// Exactly one declaration of a source is the default.
type StateDeclaration struct {
	Name    string
	Default bool
}

// Source is the animation description an icon pack is built from.
// See package svgsource for implementations.
type Source interface {
	// Name identifies the icon. It may be empty.
	Name() string
	// Properties returns the declared colors and features, in order.
	Properties() []Property
	// States returns the declared states, in order.
	States() []StateDeclaration
}

// PackMetaData is the metadata of a pack, as read by Meta.
type PackMetaData struct {
	Name     string
	Features []string
	Colors   Colors
	// States are the states actually packed, in order of first appearance.
	States []string
}

// HasFeature returns true if the pack advertises `feature`.
func (md *PackMetaData) HasFeature(feature string) bool {
	return slices.Contains(md.Features, feature)
}

// IconProperties is a customization request.
type IconProperties struct {
	// State selects the layers of a packed state. Unknown states
	// select the default layers.
	State string
	// Colors maps declared color slots to new colors.
	// Undeclared slots and unparseable colors are ignored.
	Colors map[string]string
	// Stroke is one of light, regular, bold or an integer,
	// clamped to [1, 3]. Empty means no request.
	Stroke string
	// Background is not interpreted by this package.
	Background string
}
