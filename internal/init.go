package internal

import (
	"os"

	"github.com/MrSnakeDoc/boxkeep/internal/config"
	"github.com/MrSnakeDoc/boxkeep/internal/errs"
	"github.com/MrSnakeDoc/boxkeep/internal/logger"
	"github.com/MrSnakeDoc/boxkeep/internal/middleware"

	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write the default configuration to ~/.config/boxkeep/config.yml,
or to the path given with --config. Edit host and directories afterwards.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}

			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return middleware.FlagComboError(errs.ForceRequiredInit, path)
			}

			cfg := config.Default()
			if err := config.Save(path, &cfg); err != nil {
				return err
			}

			logger.Success("Wrote default configuration to %s", path)
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing configuration")
	return cmd
}
