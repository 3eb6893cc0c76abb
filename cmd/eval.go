package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/greeneye/internal/evalcmd"
)

// newEvalCommands returns the evaluation commands, attached directly to the root
func newEvalCommands() []*cobra.Command {
	return []*cobra.Command{
		evalcmd.NewRunCmd(),
		evalcmd.NewScoreCmd(),
		evalcmd.NewInspectCmd(),
		evalcmd.NewReportCmd(),
	}
}
