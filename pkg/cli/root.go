// Package cli implements the synthex command line: thin wrappers over
// pkg/schemaio for moving schemas between serialized forms.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is injected during build.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "synthex",
	Short: "synthex converts and inspects synthetic-data schemas",
	Long: `synthex works with serialized schema files produced by the synthex
library. Schemas can be exported between JSON, YAML, and OpenAPI forms,
or imported and summarized for inspection.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called by main.
func Execute() {
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
