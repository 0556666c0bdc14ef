package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mlefebvre/girder/internal/cli/formatter"
	"github.com/mlefebvre/girder/internal/domain"
	"github.com/mlefebvre/girder/internal/service"
)

func newWbsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wbs",
		Short: "Manage the work breakdown structure",
	}

	cmd.AddCommand(
		newWbsAddCmd(app),
		newWbsTreeCmd(app),
		newWbsUpdateCmd(app),
		newWbsRemoveCmd(app),
		newWbsProgressCmd(app),
	)

	return cmd
}

func newWbsAddCmd(app *App) *cobra.Command {
	var project, parent, name, itemType, budget, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a WBS item under a parent",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			candidate := &domain.WbsItem{
				ProjectID: projectID,
				Name:      name,
				Type:      domain.WbsItemType(itemType),
			}
			if parent != "" {
				parentItem, err := resolveWbsItem(ctx, app, projectID, parent)
				if err != nil {
					return err
				}
				candidate.ParentID = &parentItem.ID
			}
			if budget != "" {
				amount, err := decimal.NewFromString(budget)
				if err != nil {
					return fmt.Errorf("invalid budget %q: %w", budget, err)
				}
				candidate.BudgetedCost = amount
			}
			if start != "" {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				candidate.StartDate = &startDate
			}
			if end != "" {
				endDate, err := time.Parse("2006-01-02", end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
				candidate.EndDate = &endDate
			}
			if candidate.HasSchedule() {
				dur := candidate.SpanDays()
				candidate.Duration = &dur
			}

			created, err := app.Wbs.Create(ctx, candidate)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s %s [%s]\n", created.Type, created.Name, created.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent item (WBS code or ID); omit for top-level")
	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&itemType, "type", "", "Item type (Summary|WorkPackage|Activity)")
	cmd.Flags().StringVar(&budget, "budget", "", "Budgeted cost (Summary and WorkPackage only)")
	cmd.Flags().StringVar(&start, "start", "", "Planned start date (YYYY-MM-DD, Activity only)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end date (YYYY-MM-DD, Activity only)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newWbsTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree PROJECT",
		Short: "Show the project's WBS tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			items, err := app.Wbs.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatWbsTree(items, p.Currency))
			return nil
		},
	}
}

func newWbsUpdateCmd(app *App) *cobra.Command {
	var project, name, itemType, budget, actual, percent, start, end string

	cmd := &cobra.Command{
		Use:   "update ITEM",
		Short: "Update a WBS item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			item, err := resolveWbsItem(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}

			var patch service.WbsItemPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("type") {
				t := domain.WbsItemType(itemType)
				patch.Type = &t
			}
			if cmd.Flags().Changed("budget") {
				amount, err := decimal.NewFromString(budget)
				if err != nil {
					return fmt.Errorf("invalid budget %q: %w", budget, err)
				}
				patch.BudgetedCost = &amount
			}
			if cmd.Flags().Changed("actual-cost") {
				amount, err := decimal.NewFromString(actual)
				if err != nil {
					return fmt.Errorf("invalid actual cost %q: %w", actual, err)
				}
				patch.ActualCost = &amount
			}
			if cmd.Flags().Changed("percent") {
				p, err := decimal.NewFromString(percent)
				if err != nil {
					return fmt.Errorf("invalid percent %q: %w", percent, err)
				}
				patch.PercentComplete = &p
			}
			if cmd.Flags().Changed("start") {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				patch.StartDate = &startDate
			}
			if cmd.Flags().Changed("end") {
				endDate, err := time.Parse("2006-01-02", end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
				patch.EndDate = &endDate
			}

			updated, err := app.Wbs.Update(ctx, item.ID, patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s [%s]\n", updated.Name, updated.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&itemType, "type", "", "Item type (Summary|WorkPackage|Activity)")
	cmd.Flags().StringVar(&budget, "budget", "", "Budgeted cost")
	cmd.Flags().StringVar(&actual, "actual-cost", "", "Actual cost to date")
	cmd.Flags().StringVar(&percent, "percent", "", "Percent complete (0-100)")
	cmd.Flags().StringVar(&start, "start", "", "Planned start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newWbsRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove ITEM",
		Short: "Remove a childless, non-top-level WBS item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			item, err := resolveWbsItem(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			if err := app.Wbs.Delete(ctx, item.ID); err != nil {
				return err
			}
			fmt.Printf("Removed %s [%s]\n", item.Name, item.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newWbsProgressCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "progress ITEM",
		Short: "Show rolled-up progress for a WBS subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			item, err := resolveWbsItem(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			report, err := app.Wbs.Progress(ctx, item.ID)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatProgress(item, report, p.Currency))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
