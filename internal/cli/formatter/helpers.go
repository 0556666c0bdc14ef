package formatter

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mlefebvre/girder/internal/domain"
)

// StatusPill returns a colored status indicator for project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On Hold")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// Money renders an amount with its currency code, grouping kept out of
// it so the output stays parseable.
func Money(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("%s %s", amount.StringFixed(2), currency)
}

// Percent renders a percent-complete value with a color cue.
func Percent(p decimal.Decimal) string {
	text := p.Round(1).String() + "%"
	switch {
	case p.GreaterThanOrEqual(decimal.NewFromInt(100)):
		return StyleGreen.Render(text)
	case p.IsZero():
		return StyleDim.Render(text)
	default:
		return StyleYellow.Render(text)
	}
}

// Date renders a planned date, or a dimmed placeholder when unset.
func Date(t *time.Time) string {
	if t == nil {
		return StyleDim.Render("--")
	}
	return t.Format("2006-01-02")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
