package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mlefebvre/girder/internal/domain"
)

// resolveProjectID turns user input (full UUID or unambiguous prefix)
// into a project ID.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveWbsItem turns user input (WBS code, full UUID or ID prefix)
// into an item within the given project.
func resolveWbsItem(ctx context.Context, app *App, projectID, input string) (*domain.WbsItem, error) {
	if input == "" {
		return nil, fmt.Errorf("WBS item reference is required")
	}

	items, err := app.Wbs.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		if it.Code == input || it.ID == input {
			return it, nil
		}
	}

	var matches []*domain.WbsItem
	for _, it := range items {
		if strings.HasPrefix(it.ID, input) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("WBS item not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("WBS item prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
