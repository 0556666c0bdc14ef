package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mlefebvre/girder/internal/domain"
)

// FormatProjectList renders projects as a table.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "LOCATION", "BUDGET", "STATUS", "START"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			TruncID(p.ID),
			p.Name,
			p.Location,
			Money(p.Budget, p.Currency),
			StatusPill(p.Status),
			p.StartDate.Format("2006-01-02"),
		})
	}
	return RenderTable(headers, rows)
}

// ProjectInspectData bundles everything the inspect view renders.
type ProjectInspectData struct {
	Project         *domain.Project
	Items           []*domain.WbsItem
	PercentComplete decimal.Decimal
}

// FormatProjectInspect renders a project header followed by its WBS
// tree with budgets.
func FormatProjectInspect(data ProjectInspectData) string {
	p := data.Project

	var b strings.Builder
	b.WriteString(Header(p.Name) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("ID:"), p.DisplayID()))
	if p.Location != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Location:"), p.Location))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Budget:"), Money(p.Budget, p.Currency)))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Status:"), StatusPill(p.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Complete:"), Percent(data.PercentComplete)))
	b.WriteString(fmt.Sprintf("%s  %s", Dim("Start:"), p.StartDate.Format("2006-01-02")))
	if p.EndDate != nil {
		b.WriteString(fmt.Sprintf("  %s  %s", Dim("End:"), p.EndDate.Format("2006-01-02")))
	}
	b.WriteString("\n")

	if len(data.Items) > 0 {
		b.WriteString("\n" + Header("Work Breakdown") + "\n")
		b.WriteString(FormatWbsTree(data.Items, p.Currency))
	}
	return b.String()
}

// FormatWbsTree renders WBS items as an indented tree ordered by code,
// with a type and budget badge per row. Activities show their planned
// window instead of a budget.
func FormatWbsTree(items []*domain.WbsItem, currency string) string {
	sorted := make([]*domain.WbsItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return codeLess(sorted[i].Code, sorted[j].Code)
	})

	// An item is the last visual child when no later row shares its
	// parent prefix at the same depth.
	treeItems := make([]TreeItem, 0, len(sorted))
	for i, it := range sorted {
		last := true
		for _, later := range sorted[i+1:] {
			if sameParent(it.Code, later.Code) {
				last = false
				break
			}
		}
		badge := string(it.Type)
		if it.Type == domain.TypeActivity {
			if it.HasSchedule() {
				badge = fmt.Sprintf("%s  %s → %s", badge, Date(it.StartDate), Date(it.EndDate))
			}
		} else {
			badge = fmt.Sprintf("%s  %s", badge, Money(it.BudgetedCost, currency))
		}
		treeItems = append(treeItems, TreeItem{
			Code:   it.Code,
			Title:  it.Name,
			Level:  it.Level,
			IsLast: last,
			Badge:  badge,
		})
	}
	return RenderTree(treeItems)
}

// codeLess orders dotted WBS codes numerically segment by segment, so
// "1.10" sorts after "1.9".
func codeLess(a, b string) bool {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		var ai, bi int
		fmt.Sscanf(as[i], "%d", &ai)
		fmt.Sscanf(bs[i], "%d", &bi)
		if ai != bi {
			return ai < bi
		}
	}
	return len(as) < len(bs)
}

func sameParent(a, b string) bool {
	ai := strings.LastIndex(a, ".")
	bi := strings.LastIndex(b, ".")
	if ai < 0 || bi < 0 {
		return ai < 0 && bi < 0
	}
	return a[:ai] == b[:bi]
}
