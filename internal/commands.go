package internal

import (
	"github.com/MrSnakeDoc/boxkeep/internal/middleware"
	"github.com/spf13/cobra"
)

var defaultCommands = []middleware.CommandFactory{
	NewInitCmd,
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewListCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewPromoteCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewExpireCmd),
	middleware.UseMiddlewareChain(requireOperation, middleware.LoadConfig)(NewRunCmd),
	middleware.UseMiddlewareChain(requireOperation, middleware.LoadConfig)(NewScheduleCmd),
}

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}
