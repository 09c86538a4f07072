package cli

import (
	"github.com/spf13/cobra"

	"github.com/jask/daybudget/internal/tui"
)

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tui.Run(cmd.Context(), a.cfg, a.svc)
		},
	}
}
