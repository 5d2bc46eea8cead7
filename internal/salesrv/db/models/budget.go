package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	BudgetEntitySeller     = "seller"
	BudgetEntityAgency     = "agency"
	BudgetEntityAdvertiser = "advertiser"
)

/*
 budget_entries: unique (entity_type, entity_id, year, month).
 Amounts are NUMERIC(14,2); month is 1..12.
*/
type BudgetEntry struct {
	EntryID            uuid.UUID       `db:"entry_id"`
	EntityType         string          `db:"entity_type"`
	EntityID           uuid.UUID       `db:"entity_id"`
	Year               int             `db:"year"`
	Month              int             `db:"month"`
	BudgetAmount       decimal.Decimal `db:"budget_amount"`
	ActualAmount       decimal.Decimal `db:"actual_amount"`
	PreviousYearAmount decimal.Decimal `db:"previous_year_amount"`
	Notes              string          `db:"notes"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

func ValidBudgetEntityType(t string) bool {
	switch t {
	case BudgetEntitySeller, BudgetEntityAgency, BudgetEntityAdvertiser:
		return true
	}
	return false
}

// AdvertiserLink carries the hierarchy edges the roll-up needs: which agency
// and seller an advertiser belongs to.
type AdvertiserLink struct {
	AdvertiserID uuid.UUID  `db:"advertiser_id"`
	AgencyID     *uuid.UUID `db:"agency_id"`
	SellerID     *uuid.UUID `db:"seller_id"`
	Name         string     `db:"name"`
}
