// Package main is the entry point for the mdx command line tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dosirrah/mdx/cmd"
	"github.com/dosirrah/mdx/internal/processor"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	versionString := fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	cmd.SetVersion(versionString)
	if err := cmd.Execute(); err != nil {
		var undefErr *processor.UndefinedReferenceError
		if errors.As(err, &undefErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
