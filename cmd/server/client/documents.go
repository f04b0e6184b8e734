package client

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/build-api/internal/document"
	"github.com/KirkDiggler/build-api/internal/handlers/build/v1alpha1"
)

var loadDocumentID string

var loadDocumentCmd = &cobra.Command{
	Use:   "load-document <file>",
	Short: "Load a JSON or YAML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}

		fields := map[string]any{
			"data":   string(data),
			"format": string(document.FormatFromPath(args[0])),
		}
		if loadDocumentID != "" {
			fields["document_id"] = loadDocumentID
		}
		return call(cmd, v1alpha1.MethodLoadDocument, fields)
	},
}

var getDocumentCmd = &cobra.Command{
	Use:   "get-document <document-id>",
	Short: "Show a stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, v1alpha1.MethodGetDocument, map[string]any{"document_id": args[0]})
	},
}

var listDocumentsCmd = &cobra.Command{
	Use:   "list-documents",
	Short: "List stored document IDs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return call(cmd, v1alpha1.MethodListDocuments, map[string]any{})
	},
}

func init() {
	loadDocumentCmd.Flags().StringVar(&loadDocumentID, "id", "", "Document ID (generated when empty)")
}
