package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

type Project struct {
	ID        string
	Name      string
	Location  string
	Budget    decimal.Decimal
	Currency  string
	StartDate time.Time
	EndDate   *time.Time
	Status    ProjectStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the fields a project must carry before it can be
// persisted: a name, a non-negative budget, and an ISO 4217 currency
// code (e.g. USD, EUR).
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.Budget.IsNegative() {
		return fmt.Errorf("project budget must not be negative")
	}
	if p.Currency != "" && !currencyPattern.MatchString(p.Currency) {
		return fmt.Errorf("currency %q must be a 3-letter ISO code (e.g. USD)", p.Currency)
	}
	if p.EndDate != nil && !p.EndDate.After(p.StartDate) {
		return fmt.Errorf("project end date must be after start date")
	}
	return nil
}

// DisplayID returns a short identifier for display, truncating the
// UUID to 8 characters.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
