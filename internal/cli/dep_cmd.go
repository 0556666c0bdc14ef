package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mlefebvre/girder/internal/cli/formatter"
	"github.com/mlefebvre/girder/internal/domain"
)

// depTypeValue is a pflag.Value that validates the dependency type as
// it is parsed.
type depTypeValue domain.DependencyType

var _ pflag.Value = (*depTypeValue)(nil)

func (v *depTypeValue) String() string { return string(*v) }
func (v *depTypeValue) Type() string   { return "deptype" }

func (v *depTypeValue) Set(s string) error {
	t := domain.DependencyType(strings.ToUpper(s))
	if !t.IsValid() {
		return fmt.Errorf("invalid dependency type %q, expected FS, SS, FF or SF", s)
	}
	*v = depTypeValue(t)
	return nil
}

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage activity dependencies",
	}

	cmd.AddCommand(
		newDepAddCmd(app),
		newDepListCmd(app),
		newDepRemoveCmd(app),
	)

	return cmd
}

func newDepAddCmd(app *App) *cobra.Command {
	var project string
	depType := depTypeValue(domain.DepFinishToStart)
	var lag int

	cmd := &cobra.Command{
		Use:   "add PREDECESSOR SUCCESSOR",
		Short: "Link two activities with a precedence constraint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			pred, err := resolveWbsItem(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			succ, err := resolveWbsItem(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			created, err := app.Deps.Create(ctx, &domain.Dependency{
				PredecessorID: pred.ID,
				SuccessorID:   succ.ID,
				Type:          domain.DependencyType(depType),
				Lag:           lag,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Linked %s %s %s (lag %dd)\n", pred.Code, created.Type, succ.Code, created.Lag)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or prefix")
	cmd.Flags().Var(&depType, "type", "Dependency type (FS|SS|FF|SF)")
	cmd.Flags().IntVar(&lag, "lag", 0, "Lag in days; negative for a lead")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newDepListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List dependencies in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			deps, err := app.Deps.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(deps) == 0 {
				fmt.Println("No dependencies defined.")
				return nil
			}

			items, err := app.Wbs.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			byID := make(map[string]*domain.WbsItem, len(items))
			for _, it := range items {
				byID[it.ID] = it
			}

			fmt.Printf("%s\n", formatter.FormatDependencyList(deps, byID))
			return nil
		},
	}
}

func newDepRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a dependency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Deps.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed dependency %s\n", args[0])
			return nil
		},
	}
}
