package client

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/build-api/internal/handlers/build/v1alpha1"
)

var createBuildCmd = &cobra.Command{
	Use:   "create-build <document-id>",
	Short: "Start an empty build against a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, v1alpha1.MethodCreateBuild, map[string]any{"document_id": args[0]})
	},
}

var getBuildCmd = &cobra.Command{
	Use:   "get-build <build-id>",
	Short: "Show a build with balances and option availability",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, v1alpha1.MethodGetBuild, map[string]any{"build_id": args[0]})
	},
}

var deleteBuildCmd = &cobra.Command{
	Use:   "delete-build <build-id>",
	Short: "Delete a build",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, v1alpha1.MethodDeleteBuild, map[string]any{"build_id": args[0]})
	},
}

var exportBuildCmd = &cobra.Command{
	Use:   "export-build <build-id>",
	Short: "Print a build's selections",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, v1alpha1.MethodExportBuild, map[string]any{"build_id": args[0]})
	},
}

var importBuildCmd = &cobra.Command{
	Use:   "import-build <build-id> <selections.json>",
	Short: "Replace a build's selections from a JSON object of option IDs to counts",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read selections: %w", err)
		}

		var selections map[string]any
		if err := json.Unmarshal(data, &selections); err != nil {
			return fmt.Errorf("selections must be a JSON object: %w", err)
		}

		return call(cmd, v1alpha1.MethodImportBuild, map[string]any{
			"build_id":   args[0],
			"selections": selections,
		})
	},
}
