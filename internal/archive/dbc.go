// Package archive converts Databricks .dbc archives to and from their
// decoded .source form. A .dbc archive is the base64 encoding of the
// notebook's JSON.
package archive

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/dosirrah/mdx/internal/log"
)

// DBCToSource decodes a .dbc archive into its JSON .source form.
// Whitespace inside the archive is dropped before decoding, since
// exported archives often carry line breaks.
func DBCToSource(input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, string(data))

	decoded, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", input, err)
	}

	if err := os.WriteFile(output, decoded, 0644); err != nil { //nolint:gosec // G306: notebook sources are not sensitive
		return err
	}
	log.Debug(log.CatConvert, "decoded archive", "input", input, "output", output, "bytes", len(decoded))
	return nil
}

// SourceToDBC encodes a .source file into a .dbc archive.
func SourceToDBC(input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	if err := os.WriteFile(output, []byte(encoded), 0644); err != nil { //nolint:gosec // G306: archives are not sensitive
		return err
	}
	log.Debug(log.CatConvert, "encoded archive", "input", input, "output", output, "bytes", len(encoded))
	return nil
}
