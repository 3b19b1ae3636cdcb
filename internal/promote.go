package internal

import (
	"github.com/MrSnakeDoc/boxkeep/internal/config"
	"github.com/MrSnakeDoc/boxkeep/internal/middleware"

	"github.com/spf13/cobra"
)

func NewPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "promote [host]",
		Aliases: []string{"mkmonthly"},
		Short:   "Copy daily archives into the monthly tier",
		Long: `Copy the newest daily archive of every name whose monthly copy is missing
or older than --promote-max-age days into the monthly tier.

Examples:
  boxkeep promote backup.example.com
  boxkeep mkmonthly --promote-max-age 28 --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}
			return runOnce(cmd.Context(), cfg, operations{Promote: true})
		},
	}
}
