package cli

import (
	"github.com/spf13/cobra"

	"github.com/mlefebvre/girder/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Wbs      service.WbsService
	Deps     service.DependencyService
	Schedule service.ScheduleService
}

// NewRootCmd creates the top-level "girder" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "girder",
		Short: "Construction project planner: WBS, budgets and schedules",
	}

	root.AddCommand(
		newProjectCmd(app),
		newWbsCmd(app),
		newDepCmd(app),
		newScheduleCmd(app),
	)

	return root
}
