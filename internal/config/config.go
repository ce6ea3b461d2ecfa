package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override config
// keys: TOYENGINE_LAYOUT_WIDTH overrides layout.width.
const EnvPrefix = "TOYENGINE"

// Config holds the settings of the command-line tools.
type Config struct {
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout"`
	Render RenderConfig `mapstructure:"render" yaml:"render"`
	Fonts  FontsConfig  `mapstructure:"fonts" yaml:"fonts"`
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

// LayoutConfig sets the viewport and the layout constants.
type LayoutConfig struct {
	Width      float64 `mapstructure:"width" yaml:"width"`
	Height     float64 `mapstructure:"height" yaml:"height"`
	HStep      float64 `mapstructure:"hstep" yaml:"hstep"`
	VStep      float64 `mapstructure:"vstep" yaml:"vstep"`
	InputWidth float64 `mapstructure:"input_width" yaml:"input_width"`
}

type RenderConfig struct {
	// ScrollStep is how far one scroll moves the page.
	ScrollStep float64 `mapstructure:"scroll_step" yaml:"scroll_step"`
	// Stylesheet replaces the default stylesheet when set.
	Stylesheet string `mapstructure:"stylesheet" yaml:"stylesheet"`
}

// FontsConfig points at TrueType files. Empty paths use the bundled Go
// fonts.
type FontsConfig struct {
	Regular    string `mapstructure:"regular" yaml:"regular"`
	Bold       string `mapstructure:"bold" yaml:"bold"`
	Italic     string `mapstructure:"italic" yaml:"italic"`
	BoldItalic string `mapstructure:"bold_italic" yaml:"bold_italic"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults initializes default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	// -- Layout --
	v.SetDefault("layout.width", 800)
	v.SetDefault("layout.height", 600)
	v.SetDefault("layout.hstep", 13)
	v.SetDefault("layout.vstep", 18)
	v.SetDefault("layout.input_width", 200)

	// -- Render --
	v.SetDefault("render.scroll_step", 100)
	v.SetDefault("render.stylesheet", "")

	// -- Fonts --
	v.SetDefault("fonts.regular", "")
	v.SetDefault("fonts.bold", "")
	v.SetDefault("fonts.italic", "")
	v.SetDefault("fonts.bold_italic", "")

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "toyengine")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
}

// New returns a viper instance with defaults and environment overrides.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// NewDefaultConfig returns the configuration with nothing overridden.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := NewConfigFromViper(v)
	if err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

// Load reads the optional config file at path on top of the defaults and
// environment.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return NewConfigFromViper(v)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Layout.Width <= 2*c.Layout.HStep {
		return fmt.Errorf("layout.width must be greater than twice layout.hstep")
	}
	if c.Layout.Height <= 0 {
		return fmt.Errorf("layout.height must be positive")
	}
	if c.Layout.HStep < 0 || c.Layout.VStep < 0 {
		return fmt.Errorf("layout.hstep and layout.vstep must not be negative")
	}
	if c.Layout.InputWidth <= 0 {
		return fmt.Errorf("layout.input_width must be positive")
	}
	if c.Render.ScrollStep <= 0 {
		return fmt.Errorf("render.scroll_step must be positive")
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}
	return nil
}
