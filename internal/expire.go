package internal

import (
	"github.com/MrSnakeDoc/boxkeep/internal/config"
	"github.com/MrSnakeDoc/boxkeep/internal/errs"
	"github.com/MrSnakeDoc/boxkeep/internal/middleware"

	"github.com/spf13/cobra"
)

func NewExpireCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expire [host]",
		Short: "Delete daily archives older than a number of days",
		Long: `Delete every daily archive strictly older than --days days.
The monthly tier is never touched.

Examples:
  boxkeep expire backup.example.com --days 14
  boxkeep expire --days 14 --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") && cfg.ExpireDays == 0 {
				return middleware.FlagComboError(errs.DaysRequired)
			}
			return runOnce(cmd.Context(), cfg, operations{Expire: true})
		},
	}

	cmd.Flags().IntP("days", "d", 0, "Age threshold in days (default expire_days from the config)")
	return cmd
}
