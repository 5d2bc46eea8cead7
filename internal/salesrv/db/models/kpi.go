package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/*
 kpis: one row per campaign. ClientCanUpdate gates whether client-role users
 may write the actuals.
*/
type KPI struct {
	KpiID             uuid.UUID       `db:"kpi_id"`
	CampaignID        uuid.UUID       `db:"campaign_id"`
	ConversionType    string          `db:"conversion_type"`
	GoalCPA           decimal.Decimal `db:"goal_cpa"`
	TargetVisits      int64           `db:"target_visits"`
	TargetConversions int64           `db:"target_conversions"`
	ActualVisits      int64           `db:"actual_visits"`
	ActualConversions int64           `db:"actual_conversions"`
	ClientCanUpdate   bool            `db:"client_can_update"`
	UpdatedBy         uuid.UUID       `db:"updated_by"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

// ActualCPA computes spend divided by actual conversions; zero conversions
// yield zero rather than a division error.
func (k *KPI) ActualCPA(spend decimal.Decimal) decimal.Decimal {
	if k.ActualConversions == 0 {
		return decimal.Zero
	}
	return spend.Div(decimal.NewFromInt(k.ActualConversions)).Round(2)
}
