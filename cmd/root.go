// Package cmd implements the mdx command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dosirrah/mdx/internal/config"
	"github.com/dosirrah/mdx/internal/document"
	"github.com/dosirrah/mdx/internal/log"
	"github.com/dosirrah/mdx/internal/presentation"
	"github.com/dosirrah/mdx/internal/tracing"
)

var (
	version = "dev"

	cfgFile   string
	debugFlag bool
	diffFlag  bool
	watchFlag bool

	cfg config.Config

	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "mdx <input> [output]",
	Short: "Resolve labels and references in markdown documents",
	Long: `mdx processes markdown documents written in the mdx dialect, replacing
label declarations (@group:name, @name) and references (#group:name,
#name) with automatically assigned numbers.

Supported inputs are .mdx plain text documents and .ipynb or .source
notebooks. Plain text output defaults to <base>.md; notebook output
defaults to <base>_processed<ext>.`,
	Version:           version,
	Args:              cobra.RangeArgs(1, 2),
	SilenceUsage:      true,
	PersistentPreRunE: initDebugLog,
	RunE:              runProcess,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .mdx/config.yaml, then ~/.config/mdx/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs (also enabled by MDX_DEBUG)")
	rootCmd.Flags().BoolVar(&diffFlag, "diff", false,
		"print what would change instead of writing the output file")
	rootCmd.Flags().BoolVar(&watchFlag, "watch", false,
		"reprocess the input whenever it changes")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("output.banner", defaults.Output.Banner)
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
	viper.SetDefault("preview.width", defaults.Preview.Width)
	viper.SetDefault("preview.style", defaults.Preview.Style)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .mdx/config.yaml (current directory)
		// 2. ~/.config/mdx/config.yaml (user config)
		if _, err := os.Stat(".mdx/config.yaml"); err == nil {
			viper.SetConfigFile(".mdx/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "mdx"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .mdx/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".mdx/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// initDebugLog turns on file logging when --debug or MDX_DEBUG is set.
func initDebugLog(_ *cobra.Command, _ []string) error {
	if os.Getenv("MDX_DEBUG") == "" && !debugFlag {
		return nil
	}

	logPath := os.Getenv("MDX_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}

	cleanup, err := log.Init(logPath)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	logCleanup = cleanup

	log.Info(log.CatConfig, "mdx starting", "debug", true, "logPath", logPath)
	return nil
}

// finalizeConfig fills derived defaults and validates the loaded config.
func finalizeConfig() error {
	if cfg.Tracing.Enabled && cfg.Tracing.Exporter == tracing.ExporterFile && cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = config.DefaultTracesFilePath()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func newTracingProvider() (*tracing.Provider, error) {
	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
		ServiceName:  "mdx",
	})
	if err != nil {
		return nil, fmt.Errorf("creating tracing provider: %w", err)
	}
	return provider, nil
}

// resolvePaths validates the input extension and determines the output
// path, either the explicit second argument or the format's default.
func resolvePaths(args []string) (document.Format, string, string, error) {
	input := args[0]
	format, err := document.DetectFormat(input)
	if err != nil {
		return document.FormatUnknown, "", "", err
	}

	output := document.DefaultOutputPath(input, format)
	if len(args) == 2 {
		output = args[1]
	}
	if err := document.ValidateOutputPath(output, format); err != nil {
		return document.FormatUnknown, "", "", err
	}

	return format, input, output, nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	if diffFlag && watchFlag {
		return errors.New("cannot use --diff together with --watch")
	}

	format, input, output, err := resolvePaths(args)
	if err != nil {
		return err
	}

	if err := finalizeConfig(); err != nil {
		return err
	}

	provider, err := newTracingProvider()
	if err != nil {
		return err
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatTrace, "tracing shutdown failed", err)
		}
	}()

	pl := document.NewPipeline(document.Config{
		Diagnostics: cmd.ErrOrStderr(),
		Banner:      cfg.Output.Banner,
	})

	ctx := context.Background()

	if diffFlag {
		before, after, err := pl.Preview(ctx, format, input)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), presentation.FormatDiff(before, after))
		return nil
	}

	if watchFlag {
		return runWatch(cmd, pl, format, input, output)
	}

	if err := pl.Run(ctx, format, input, output); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Processed file saved as: %s\n", output)
	return nil
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if logCleanup != nil {
		logCleanup()
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
