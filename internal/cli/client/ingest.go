package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// IngestRequest represents the document ingestion API request.
type IngestRequest struct {
	DocumentReference string `json:"document_reference"`
}

// IngestResponse represents the document ingestion API response.
type IngestResponse struct {
	ChunksIndexed int `json:"chunks_indexed"`
	ChunksFailed  int `json:"chunks_failed"`
}

// IngestCmd creates the ingest command.
func IngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <document-url>",
		Short: "Ingest a document",
		Long:  "Fetches the referenced document, chunks it, and indexes it for retrieval.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runIngest(args[0], outputJSON)
		},
	}

	return cmd
}

func runIngest(documentRef string, outputJSON bool) error {
	api, err := NewAPIClient()
	if err != nil {
		return err
	}

	resp, err := api.Post("/documents", IngestRequest{DocumentReference: documentRef})
	if err != nil {
		return err
	}

	var result IngestResponse
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Indexed %d chunk(s)", result.ChunksIndexed)
	if result.ChunksFailed > 0 {
		fmt.Printf(", %d failed", result.ChunksFailed)
	}
	fmt.Println()
	return nil
}
