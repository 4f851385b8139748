package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lakeworks/ragline/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "raglined",
		Short: "Ragline daemon",
		Long:  "Ragline daemon for running the document ingestion and retrieval API server",
	}

	rootCmd.AddCommand(admin.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
