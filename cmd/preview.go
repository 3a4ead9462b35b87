package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dosirrah/mdx/internal/document"
	"github.com/dosirrah/mdx/internal/render"
)

var (
	previewWidth int
	previewStyle string
)

var previewCmd = &cobra.Command{
	Use:   "preview <input>",
	Short: "Render the processed document in the terminal",
	Long: `Process a plain text document in memory and render the result with
terminal styling. Nothing is written to disk.

Width and style default to the preview section of the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&previewWidth, "width", 0, "word wrap width (default from config)")
	previewCmd.Flags().StringVar(&previewStyle, "style", "", "glamour style: auto, dark, light, or a JSON file")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	input := args[0]
	format, err := document.DetectFormat(input)
	if err != nil {
		return err
	}
	if format != document.FormatMarkdown {
		return fmt.Errorf("preview supports plain text documents only, not %s", format)
	}

	if err := finalizeConfig(); err != nil {
		return err
	}

	width := cfg.Preview.Width
	if previewWidth > 0 {
		width = previewWidth
	}
	style := cfg.Preview.Style
	if previewStyle != "" {
		style = previewStyle
	}

	pl := document.NewPipeline(document.Config{Diagnostics: cmd.ErrOrStderr()})
	_, after, err := pl.Preview(context.Background(), format, input)
	if err != nil {
		return err
	}

	r, err := render.New(width, style)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	out, err := r.Render(after)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
