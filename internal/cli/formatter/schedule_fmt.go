package formatter

import (
	"fmt"
	"strings"

	"github.com/mlefebvre/girder/internal/domain"
	"github.com/mlefebvre/girder/internal/service"
)

// FormatDependencyList renders dependency edges with resolved endpoint
// names.
func FormatDependencyList(deps []domain.Dependency, itemsByID map[string]*domain.WbsItem) string {
	headers := []string{"ID", "PREDECESSOR", "TYPE", "LAG", "SUCCESSOR"}
	rows := make([][]string, 0, len(deps))
	for _, d := range deps {
		rows = append(rows, []string{
			TruncID(d.ID),
			endpointLabel(itemsByID, d.PredecessorID),
			StylePurple.Render(string(d.Type)),
			fmt.Sprintf("%dd", d.Lag),
			endpointLabel(itemsByID, d.SuccessorID),
		})
	}
	return RenderTable(headers, rows)
}

func endpointLabel(itemsByID map[string]*domain.WbsItem, id string) string {
	if it, ok := itemsByID[id]; ok {
		return fmt.Sprintf("%s %s", Dim(it.Code), it.Name)
	}
	return TruncID(id)
}

// FormatFinalizeResult summarizes one schedule-finalization run.
func FormatFinalizeResult(r *service.FinalizeResult) string {
	var b strings.Builder
	if r.UpdatedCount == 0 && r.ErrorCount == 0 {
		b.WriteString(Dim("Schedule already satisfies every dependency; nothing moved.") + "\n")
	} else {
		b.WriteString(fmt.Sprintf("%s %d activities rescheduled\n",
			StyleGreen.Render("✔"), r.UpdatedCount))
	}
	if r.ErrorCount > 0 {
		b.WriteString(fmt.Sprintf("%s %d updates failed\n", StyleRed.Render("✖"), r.ErrorCount))
		for _, msg := range r.Errors {
			b.WriteString("  " + Dim(msg) + "\n")
		}
	}
	return b.String()
}

// FormatProgress renders a subtree progress report.
func FormatProgress(item *domain.WbsItem, report *service.ProgressReport, currency string) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s %s", item.Code, item.Name)) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Complete:"), Percent(report.PercentComplete)))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Actual cost:"), Money(report.ActualCost, currency)))
	if !report.BudgetedCost.IsZero() {
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Budget:"), Money(report.BudgetedCost, currency)))
	}
	return b.String()
}
