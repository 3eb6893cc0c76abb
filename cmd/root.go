package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greeneye",
		Short: "Overlay detection annotations on photos and score predictions",
		Long: `Greeneye compares predicted shape annotations with ground truth for a visual
inspection dataset.

It draws both annotation sets onto each photo, writes side-by-side comparison
images and reports how many predicted polygons appear verbatim in the ground truth.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newEvalCommands()...)
	cmd.AddCommand(newServeCmd())

	return cmd
}
