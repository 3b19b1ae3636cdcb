package internal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MrSnakeDoc/boxkeep/internal/config"
	"github.com/MrSnakeDoc/boxkeep/internal/errs"
	"github.com/MrSnakeDoc/boxkeep/internal/logger"
	"github.com/MrSnakeDoc/boxkeep/internal/middleware"
	"github.com/MrSnakeDoc/boxkeep/internal/scheduler"

	"github.com/spf13/cobra"
)

func NewScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule [host]",
		Short: "Repeat a run on a cron schedule until interrupted",
		Long: `Repeat the selected operations on a cron schedule. Every tick opens a new
storage session and uses its own start time. A tick that fires while the
previous run is still going is skipped.

Examples:
  boxkeep schedule backup.example.com --cron "0 3 * * *" --mkmonthly --expire 14`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}
			if cfg.Schedule == "" {
				return middleware.FlagComboError(errs.ScheduleRequired)
			}

			ops := operationsFromFlags(cmd)
			s, err := scheduler.New(cfg.Schedule, func(ctx context.Context) error {
				return runOnce(ctx, cfg, ops)
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Debug("scheduling %+v", ops)
			return s.Run(ctx)
		},
	}

	addOperationFlags(cmd)
	cmd.Flags().String("cron", "", `Cron expression, e.g. "0 3 * * *" (default schedule from the config)`)
	return cmd
}
