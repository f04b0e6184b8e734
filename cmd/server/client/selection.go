package client

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/build-api/internal/handlers/build/v1alpha1"
)

var selectOptionCmd = &cobra.Command{
	Use:   "select <build-id> <option-id>",
	Short: "Select one unit of an option",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, v1alpha1.MethodSelectOption, map[string]any{
			"build_id":  args[0],
			"option_id": args[1],
		})
	},
}

var deselectOptionCmd = &cobra.Command{
	Use:   "deselect <build-id> <option-id>",
	Short: "Remove one unit of an option",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, v1alpha1.MethodDeselectOption, map[string]any{
			"build_id":  args[0],
			"option_id": args[1],
		})
	},
}

var rollOptionCmd = &cobra.Command{
	Use:   "roll <build-id> <category>",
	Short: "Select a random available option in a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd, v1alpha1.MethodRollOption, map[string]any{
			"build_id": args[0],
			"category": args[1],
		})
	},
}
