package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/benoitkugler/svgpack/svgopt"
	"github.com/benoitkugler/svgpack/svgpack"
)

const envPrefix = "SVGPACK"

// Configuration keys, also readable from SVGPACK_<KEY> variables.
const (
	keyErrorMode = "error_mode"
	keyLogLevel  = "log_level"
	keyMinify    = "minify"
	keyPrecision = "precision"
)

// config is the resolved configuration of one invocation.
type config struct {
	errorMode svgpack.ErrorMode
	logLevel  log.Level
	minify    bool
	precision int
}

func (c config) optimizer() svgopt.Options {
	return svgopt.Options{PrefixIDs: true, Minify: c.minify, Precision: c.precision}
}

// app holds the state shared by the subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config
}

// newRootCmd returns the command tree, with its own configuration,
// so that several invocations may be run in the same process.
func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "svgpack",
		Short: "Bundle icon layers into self-describing SVG packs",
		Long: `svgpack merges the state and stroke variants of an icon into one SVG
document, and reads them back.

Examples:
  svgpack pack --source lock.json -l lock.svg -l lock-morph.svg#morph-single -o lock.pack.svg
  svgpack meta lock.pack.svg
  svgpack unpack lock.pack.svg -d layers
  svgpack customize lock.pack.svg --state morph-single --color primary=#ff0000 --stroke bold`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.loadConfig(); err != nil {
				return err
			}
			logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "svgpack"})
			logger.SetLevel(a.cfg.logLevel)
			log.SetDefault(logger)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String("error-mode", "warn", "handling of invalid layers: ignore, warn or strict")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.Bool("minify", true, "minify the produced svg")
	flags.Int("precision", 0, "significant digits kept by the minifier, 0 to disable rounding")
	_ = a.v.BindPFlag(keyErrorMode, flags.Lookup("error-mode"))
	_ = a.v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(keyMinify, flags.Lookup("minify"))
	_ = a.v.BindPFlag(keyPrecision, flags.Lookup("precision"))

	rootCmd.AddCommand(a.packCmd())
	rootCmd.AddCommand(a.unpackCmd())
	rootCmd.AddCommand(a.metaCmd())
	rootCmd.AddCommand(a.customizeCmd())
	return rootCmd
}

// loadConfig resolves flags, environment and config file, in this order
// of precedence.
func (a *app) loadConfig() error {
	v := a.v
	v.SetDefault(keyErrorMode, svgpack.WarnErrorMode.String())
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyMinify, true)
	v.SetDefault(keyPrecision, 0)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", a.cfgFile, err)
		}
	}

	mode, err := svgpack.ParseErrorMode(v.GetString(keyErrorMode))
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	a.cfg = config{
		errorMode: mode,
		logLevel:  level,
		minify:    v.GetBool(keyMinify),
		precision: v.GetInt(keyPrecision),
	}
	return nil
}

// writeOutput writes to the named file, or to `stdout` if empty.
func writeOutput(stdout io.Writer, output string, content string) error {
	if output == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
		return err
	}
	log.Info("written", "file", output)
	return nil
}
