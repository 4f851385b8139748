package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lakeworks/ragline/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "ragline",
		Short: "Ragline CLI - Document ingestion and question answering",
		Long: `Ragline CLI provides commands to ingest documents and ask questions.

Environment variables:
  RAGLINE_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")

	rootCmd.AddCommand(client.IngestCmd())
	rootCmd.AddCommand(client.AskCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
