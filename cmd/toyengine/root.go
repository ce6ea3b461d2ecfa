package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"toyengine/internal/config"
	"toyengine/internal/observability"
	"toyengine/pkg/layout"
	"toyengine/pkg/page"
	"toyengine/pkg/resource"
	"toyengine/pkg/text"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// app is the state shared by every command once configuration is loaded.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
	fonts   *text.FaceProvider
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "toyengine",
		Short:         "toyengine parses, styles and lays out HTML documents.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (YAML, TOML or JSON)")
	flags.Float64("width", 0, "viewport width (default from layout.width)")
	flags.Float64("height", 0, "viewport height (default from layout.height)")
	flags.String("log-level", "", "log level (default from logger.level)")
	_ = a.v.BindPFlag("layout.width", flags.Lookup("width"))
	_ = a.v.BindPFlag("layout.height", flags.Lookup("height"))
	_ = a.v.BindPFlag("logger.level", flags.Lookup("log-level"))

	root.AddCommand(newRenderCmd(a), newTreeCmd(a), newConfigCmd(a))
	return root
}

func (a *app) init() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", a.cfgFile, err)
		}
	}
	cfg, err := config.NewConfigFromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = observability.NewStderrLogger(cfg.Logger)
	a.logger.Debug("configuration loaded", zap.String("file", a.v.ConfigFileUsed()))
	return nil
}

// fontsFor returns the configured font provider, shared by layout and
// rendering so both measure with the same faces.
func (a *app) fontsFor() (*text.FaceProvider, error) {
	if a.fonts != nil {
		return a.fonts, nil
	}
	fonts, err := text.NewFaceProvider(text.FontConfig{
		Regular:    a.cfg.Fonts.Regular,
		Bold:       a.cfg.Fonts.Bold,
		Italic:     a.cfg.Fonts.Italic,
		BoldItalic: a.cfg.Fonts.BoldItalic,
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("loading fonts: %w", err)
	}
	a.fonts = fonts
	return fonts, nil
}

// loader builds a page loader for documents read from path.
func (a *app) loader(path string) (*page.Loader, error) {
	fonts, err := a.fontsFor()
	if err != nil {
		return nil, err
	}

	opts := layout.DefaultOptions()
	opts.HStep = a.cfg.Layout.HStep
	opts.VStep = a.cfg.Layout.VStep
	opts.InputWidth = a.cfg.Layout.InputWidth

	options := []page.Option{
		page.WithLogger(a.logger),
		page.WithLayoutOptions(opts),
	}
	if path != "-" {
		options = append(options, page.WithFetcher(resource.NewFetcher(path)))
	}
	if a.cfg.Render.Stylesheet != "" {
		sheet, err := os.ReadFile(a.cfg.Render.Stylesheet)
		if err != nil {
			return nil, fmt.Errorf("reading stylesheet: %w", err)
		}
		options = append(options, page.WithUserAgentStylesheet(string(sheet)))
	}
	return page.NewLoader(fonts, options...), nil
}

// load reads and lays out the document at path, "-" meaning stdin.
func (a *app) load(cmd *cobra.Command, path string) (*page.Page, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	loader, err := a.loader(path)
	if err != nil {
		return nil, err
	}
	return loader.Load(string(data), a.cfg.Layout.Width), nil
}
