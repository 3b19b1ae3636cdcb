package internal

import (
	"os"
	"strings"

	"github.com/MrSnakeDoc/boxkeep/internal/logger"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "dev"

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boxkeep",
		Short: "Retention and promotion for backup archives on a storage box",
		Long: `Boxkeep maintains two tiers of dated backup archives on a remote storage box.
It lists the newest archive per name, promotes daily archives into the monthly
tier when the monthly copy is stale, and expires old daily archives.`,
		Example: `boxkeep run backup.example.com --list --mkmonthly --expire 14`,
		Version: Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.ConfigureLoggerFromFlags()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Config file (default ~/.config/boxkeep/config.yml)")
	pf.String("host", "", "Storage box host; local directories when empty")
	pf.IntP("port", "p", 0, "SSH port (default 22)")
	pf.StringP("user", "u", "", "SSH user (default current user)")
	pf.StringP("identity", "i", "", "SSH private key (default ~/.ssh/id_ed25519)")
	pf.String("known-hosts", "", "known_hosts file (default ~/.ssh/known_hosts)")
	pf.Bool("insecure-ignore-host-key", false, "Do not verify the host key")
	pf.String("daily", "", "Daily tier directory (default /home/daily)")
	pf.String("monthly", "", "Monthly tier directory (default /home/monthly)")
	pf.String("re", "", "Filename pattern with name, year, month and day groups")
	pf.String("on-parse-error", "", `What to do with unparseable entries: "skip" or "abort"`)
	pf.Int("promote-max-age", 0, "Promote when the monthly copy is older than this many days (default 30)")
	pf.Duration("timeout", 0, "Timeout of a single storage command (default 2m)")
	pf.Bool("dry-run", false, "Show what would change without changing it")
	pf.String("metrics-file", "", "Write Prometheus metrics of the run to this file")
	pf.CountVarP(&logger.FlagVerboseCount, "verbose", "V", "Verbose output")
	pf.BoolVarP(&logger.FlagQuiet, "quiet", "q", false, "Only print errors")
	pf.BoolVar(&logger.FlagJSON, "json", false, "Log as JSON")

	RegisterSubCommands(cmd)

	return cmd
}

func Execute() error {
	root := NewRootCmd()

	if os.Getenv("COMP_LINE") != "" ||
		(len(os.Args) > 1 && strings.HasPrefix(os.Args[1], "__complete")) {
		return root.Execute()
	}

	if err := root.Execute(); err != nil {
		logger.Debug("Failed to execute root command: %v", err)
		return err
	}
	return nil
}
