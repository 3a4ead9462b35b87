package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dosirrah/mdx/internal/archive"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert between .source and .dbc archives",
	Long: `Convert a .source notebook to a base64 .dbc archive, or decode a .dbc
archive back to its .source form. The direction follows the file
extensions.

Examples:
  mdx convert exam.source exam.dbc
  mdx convert exam.dbc exam.source`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]
	if err := convertArchive(input, output); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Converted %s -> %s\n", input, output)
	return nil
}

// convertArchive dispatches on the extension pair.
func convertArchive(input, output string) error {
	inExt := strings.ToLower(filepath.Ext(input))
	outExt := strings.ToLower(filepath.Ext(output))

	switch {
	case inExt == ".dbc" && outExt == ".source":
		return archive.DBCToSource(input, output)
	case inExt == ".source" && outExt == ".dbc":
		return archive.SourceToDBC(input, output)
	default:
		return errors.New("unsupported conversion: use .dbc to .source or .source to .dbc")
	}
}
