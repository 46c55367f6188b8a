package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "optimize"

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Paths   PathsConfig
	Encode  EncodeConfig
	Log     LogConfig
	Metrics MetricsConfig
	Trace   TraceConfig
}

type PathsConfig struct {
	SourceDir     string `envconfig:"SOURCE_DIR" default:"src/assets/products"`
	DestDir       string `envconfig:"DEST_DIR" default:"public/assets/products"`
	CreateDestDir bool   `envconfig:"CREATE_DEST_DIR" default:"false"`
}

// EncodeConfig holds the resize bound and the WebP encoder knobs.
type EncodeConfig struct {
	MaxWidth int `envconfig:"MAX_WIDTH" default:"1200"`
	Quality  int `envconfig:"QUALITY" default:"85"`
	Method   int `envconfig:"METHOD" default:"6"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"warn"`
}

type MetricsConfig struct {
	Textfile string `envconfig:"METRICS_TEXTFILE"`
}

type TraceConfig struct {
	Exporter     string `envconfig:"TRACE_EXPORTER" default:"none"`
	OTLPEndpoint string `envconfig:"TRACE_OTLP_ENDPOINT"`
	OTLPInsecure bool   `envconfig:"TRACE_OTLP_INSECURE" default:"false"`
}

// Default returns the configuration an unconfigured environment produces.
func Default() Config {
	return Config{
		Paths: PathsConfig{
			SourceDir: "src/assets/products",
			DestDir:   "public/assets/products",
		},
		Encode: EncodeConfig{
			MaxWidth: 1200,
			Quality:  85,
			Method:   6,
		},
		Log:   LogConfig{Level: "warn"},
		Trace: TraceConfig{Exporter: "none"},
	}
}

func Load() (Config, error) {
	var cfg Config
	for _, section := range []any{&cfg.Paths, &cfg.Encode, &cfg.Log, &cfg.Metrics, &cfg.Trace} {
		if err := envconfig.Process(envPrefix, section); err != nil {
			return Config{}, fmt.Errorf("load env: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		return fmt.Errorf("%w: source dir is required", ErrInvalid)
	}
	if strings.TrimSpace(c.Paths.DestDir) == "" {
		return fmt.Errorf("%w: dest dir is required", ErrInvalid)
	}
	if c.Encode.MaxWidth <= 0 {
		return fmt.Errorf("%w: max width must be > 0, got %d", ErrInvalid, c.Encode.MaxWidth)
	}
	if c.Encode.Quality < 0 || c.Encode.Quality > 100 {
		return fmt.Errorf("%w: quality must be within 0..100, got %d", ErrInvalid, c.Encode.Quality)
	}
	if c.Encode.Method < 0 || c.Encode.Method > 6 {
		return fmt.Errorf("%w: method must be within 0..6, got %d", ErrInvalid, c.Encode.Method)
	}
	return nil
}
