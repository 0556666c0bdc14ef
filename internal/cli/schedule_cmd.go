package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlefebvre/girder/internal/cli/formatter"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute activity schedules",
	}

	cmd.AddCommand(newScheduleFinalizeCmd(app))

	return cmd
}

func newScheduleFinalizeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "finalize PROJECT",
		Short: "Reschedule activities so every dependency constraint holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			result, err := app.Schedule.FinalizeSchedule(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatFinalizeResult(result))
			return nil
		},
	}
}
