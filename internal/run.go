package internal

import (
	"github.com/MrSnakeDoc/boxkeep/internal/config"
	"github.com/MrSnakeDoc/boxkeep/internal/middleware"

	"github.com/spf13/cobra"
)

func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [host]",
		Short: "Run several operations in one session",
		Long: `Run the selected operations against one storage session, always in the
order list, promote, expire. Each operation lists the tiers again, so expire
sees what promote copied.

Examples:
  boxkeep run backup.example.com --list
  boxkeep run backup.example.com --mkmonthly --expire 14`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}
			return runOnce(cmd.Context(), cfg, operationsFromFlags(cmd))
		},
	}

	addOperationFlags(cmd)
	return cmd
}
