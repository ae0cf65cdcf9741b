package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/benoitkugler/svgpack/svgcolor"
	"github.com/benoitkugler/svgpack/svgnode"
	"github.com/benoitkugler/svgpack/svgpack"
	"github.com/benoitkugler/svgpack/svgsource"
)

func (a *app) packCmd() *cobra.Command {
	var (
		sourceFile string
		name       string
		layerArgs  []string
		output     string
	)
	cmd := &cobra.Command{
		Use:   "pack --layer FILE[#state,...][@stroke] ...",
		Short: "Merge layers into one icon pack",
		Long: `Merge layers into one icon pack.

Each --layer names an svg file, optionally followed by the states it belongs
to (#state1,state2) and its stroke level (@light, @regular, @bold or 1 to 3).
Colors, features and states are declared by the --source animation (Lottie
JSON or YAML manifest).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var src svgpack.Source
			if sourceFile != "" {
				ic, err := svgsource.ReadFile(sourceFile)
				if err != nil {
					return err
				}
				if name != "" {
					ic = svgsource.NewIcon(name, ic.Properties(), ic.States())
				}
				src = ic
			} else if name != "" {
				src = svgsource.NewIcon(name, nil, nil)
			}

			layers := make([]svgpack.Layer, 0, len(layerArgs))
			for _, arg := range layerArgs {
				layer, err := readLayer(arg)
				if err != nil {
					return err
				}
				layers = append(layers, layer)
			}

			pack, err := svgpack.Pack(src, layers, a.cfg.errorMode)
			if err != nil {
				return err
			}
			log.Debug("packed", "layers", len(layers))
			return writeOutput(cmd.OutOrStdout(), output, pack)
		},
	}
	cmd.Flags().StringVarP(&sourceFile, "source", "s", "", "animation source declaring colors, features and states")
	cmd.Flags().StringVarP(&name, "name", "n", "", "pack name, overriding the source one")
	cmd.Flags().StringArrayVarP(&layerArgs, "layer", "l", nil, "layer file, as FILE[#state,...][@stroke]")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("layer")
	return cmd
}

// parseLayerArg splits FILE[#state,...][@stroke]. An '@' not followed
// by a stroke level is part of the file name, as in icon@2x.svg.
func parseLayerArg(arg string) (file string, states []string, stroke svgpack.StrokeLevel, err error) {
	file = arg
	if i := strings.LastIndexByte(file, '@'); i >= 0 {
		if level, err := svgpack.ParseStrokeLevel(file[i+1:]); err == nil {
			stroke, file = level, file[:i]
		}
	}
	if i := strings.LastIndexByte(file, '#'); i >= 0 {
		for _, s := range strings.Split(file[i+1:], ",") {
			if s = strings.TrimSpace(s); s != "" {
				states = append(states, s)
			}
		}
		file = file[:i]
	}
	if file == "" {
		return "", nil, 0, fmt.Errorf("missing file in layer %q", arg)
	}
	return file, states, stroke, nil
}

func readLayer(arg string) (svgpack.Layer, error) {
	file, states, stroke, err := parseLayerArg(arg)
	if err != nil {
		return svgpack.Layer{}, err
	}
	content, err := os.ReadFile(file)
	if err != nil {
		return svgpack.Layer{}, err
	}
	return svgpack.Layer{Content: string(content), State: states, Stroke: stroke}, nil
}

func readPack(file string) (string, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func (a *app) unpackCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "unpack PACK",
		Short: "Split a pack into its layers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pack, err := readPack(args[0])
			if err != nil {
				return err
			}
			md, err := svgpack.Meta(pack)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			layers, err := svgpack.UnpackWith(pack, a.cfg.optimizer())
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			for i, layer := range layers {
				file := filepath.Join(dir, layerFileName(md.Name, i, layer))
				if err := os.WriteFile(file, []byte(layer.Content), 0o644); err != nil {
					return err
				}
				log.Info("written", "file", file, "state", layer.State, "stroke", layer.Stroke)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	return cmd
}

// layerFileName returns <name>-<index>[-<states>][-<stroke>].svg
func layerFileName(name string, index int, layer svgpack.Layer) string {
	parts := []string{name, fmt.Sprint(index)}
	if len(layer.State) != 0 {
		parts = append(parts, strings.Join(layer.State, "+"))
	}
	if layer.Stroke != 0 {
		parts = append(parts, layer.Stroke.String())
	}
	return strings.Join(parts, "-") + ".svg"
}

// metaOutput is the JSON form of svgpack.PackMetaData.
// Colors are listed in declaration order.
type metaOutput struct {
	Name     string        `json:"name"`
	Features []string      `json:"features"`
	Colors   []colorOutput `json:"colors"`
	States   []string      `json:"states"`
}

type colorOutput struct {
	Slot  string `json:"slot"`
	Color string `json:"color"`
}

func newMetaOutput(md *svgpack.PackMetaData) metaOutput {
	out := metaOutput{
		Name:     md.Name,
		Features: append([]string{}, md.Features...),
		Colors:   make([]colorOutput, len(md.Colors)),
		States:   append([]string{}, md.States...),
	}
	for i, c := range md.Colors {
		out.Colors[i] = colorOutput{Slot: c.Name, Color: c.Value}
	}
	return out
}

func (a *app) metaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meta PACK",
		Short: "Print the metadata of a pack, as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pack, err := readPack(args[0])
			if err != nil {
				return err
			}
			md, err := svgpack.Meta(pack)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			data, err := json.MarshalIndent(newMetaOutput(md), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func (a *app) customizeCmd() *cobra.Command {
	var (
		props  svgpack.IconProperties
		colors []string
		output string
	)
	cmd := &cobra.Command{
		Use:   "customize PACK",
		Short: "Select, recolor and restroke the layers of a pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pack, err := readPack(args[0])
			if err != nil {
				return err
			}
			props.Colors = make(map[string]string, len(colors))
			for _, c := range colors {
				slot, value, ok := strings.Cut(c, "=")
				if !ok {
					return fmt.Errorf("invalid color %q, expected slot=value", c)
				}
				props.Colors[strings.TrimSpace(slot)] = strings.TrimSpace(value)
			}

			out, err := svgpack.CustomizeWith(pack, props, a.cfg.optimizer())
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if props.Background != "" {
				out, err = withBackground(out, props.Background)
				if err != nil {
					return err
				}
			}
			return writeOutput(cmd.OutOrStdout(), output, out)
		},
	}
	cmd.Flags().StringVar(&props.State, "state", "", "state to select (default: base layers)")
	cmd.Flags().StringArrayVarP(&colors, "color", "c", nil, "new color of a declared slot, as slot=value")
	cmd.Flags().StringVar(&props.Stroke, "stroke", "", "stroke level: light, regular, bold or 1 to 3")
	cmd.Flags().StringVar(&props.Background, "background", "", "background color painted behind the icon")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// withBackground paints a full size rectangle behind the content of `doc`.
func withBackground(doc, background string) (string, error) {
	hex, ok := svgcolor.Normalize(background)
	if !ok {
		return "", fmt.Errorf("invalid background color %q", background)
	}
	tree, err := svgnode.ParseString(doc)
	if err != nil {
		return "", err
	}
	root := tree.Root()
	rect := svgnode.NewElement("rect",
		svgnode.Attr{Name: "width", Value: "100%"},
		svgnode.Attr{Name: "height", Value: "100%"},
		svgnode.Attr{Name: "fill", Value: hex},
	)
	root.Children = append([]svgnode.Node{rect}, root.Children...)
	return tree.Build(), nil
}
