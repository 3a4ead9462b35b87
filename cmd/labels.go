package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dosirrah/mdx/internal/document"
	"github.com/dosirrah/mdx/internal/presentation"
)

var labelsJSON bool

var labelsCmd = &cobra.Command{
	Use:   "labels <input>",
	Short: "List the labels a document declares",
	Long: `List every label the document declares together with its group and
assigned number, in declaration order. Only the collection pass runs;
nothing is written.

Examples:
  # Aligned table
  mdx labels exam.mdx

  # JSON, e.g. for jq
  mdx labels exam.ipynb --json`,
	Args: cobra.ExactArgs(1),
	RunE: runLabels,
}

func init() {
	labelsCmd.Flags().BoolVar(&labelsJSON, "json", false, "emit labels as JSON")
	rootCmd.AddCommand(labelsCmd)
}

func runLabels(cmd *cobra.Command, args []string) error {
	input := args[0]
	format, err := document.DetectFormat(input)
	if err != nil {
		return err
	}

	pl := document.NewPipeline(document.Config{Diagnostics: cmd.ErrOrStderr()})
	reg, err := pl.Collect(context.Background(), format, input)
	if err != nil {
		return err
	}

	formatter := presentation.NewFormatter(cmd.OutOrStdout())
	dtos := presentation.FromRegistry(reg)

	if labelsJSON {
		return formatter.FormatLabelsJSON(dtos)
	}
	return formatter.FormatLabelTable(dtos)
}
