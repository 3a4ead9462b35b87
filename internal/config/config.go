// Package config provides configuration types and defaults for mdx.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dosirrah/mdx/internal/log"
)

// Config holds all configuration options for mdx.
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Preview PreviewConfig `mapstructure:"preview"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// OutputConfig controls what gets written alongside processed content.
type OutputConfig struct {
	// Banner prepends a generated-by comment to plain markdown output.
	Banner bool `mapstructure:"banner"`
}

// WatchConfig holds watch-mode options.
type WatchConfig struct {
	// DebounceMs is the quiet period after a filesystem event before the
	// document is reprocessed. Editors often fire several events per
	// save; one run per save is enough.
	DebounceMs int `mapstructure:"debounce_ms"`
}

// Debounce returns the debounce interval as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// PreviewConfig holds terminal rendering options for mdx preview.
type PreviewConfig struct {
	Width int    `mapstructure:"width"`
	Style string `mapstructure:"style"` // "auto", "dark", "light", or a JSON style path
}

// TracingConfig holds OpenTelemetry tracing configuration.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"` // "none", "file", "stdout", "otlp"
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/mdx/traces/traces.jsonl or empty string if home dir
// unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mdx", "traces", "traces.jsonl")
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Output: OutputConfig{
			Banner: false,
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
		Preview: PreviewConfig{
			Width: 100,
			Style: "auto",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateWatch(c.Watch); err != nil {
		return err
	}
	if err := ValidatePreview(c.Preview); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateWatch checks watch-mode options.
func ValidateWatch(watch WatchConfig) error {
	if watch.DebounceMs <= 0 {
		return fmt.Errorf("watch.debounce_ms must be positive, got %d", watch.DebounceMs)
	}
	return nil
}

// ValidatePreview checks preview rendering options.
func ValidatePreview(preview PreviewConfig) error {
	if preview.Width <= 0 {
		return fmt.Errorf("preview.width must be positive, got %d", preview.Width)
	}
	return nil
}

// ValidateTracing checks tracing options.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate endpoint requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# mdx Configuration

# Output settings
output:
  banner: false         # Prepend a generated-by comment to .md output

# Watch mode (--watch)
watch:
  debounce_ms: 500      # Quiet period before reprocessing after a change

# Terminal rendering for 'mdx preview'
preview:
  width: 100            # Wrap width
  style: auto           # Rendering style: "auto", "dark", "light", or a JSON style path

# OpenTelemetry tracing of processing runs
tracing:
  enabled: false
  exporter: file        # "none", "file", "stdout", or "otlp"
  # file_path: ~/.config/mdx/traces/traces.jsonl
  # otlp_endpoint: localhost:4317
  # sample_rate: 1.0    # Fraction of runs to trace (useful in watch mode)
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
