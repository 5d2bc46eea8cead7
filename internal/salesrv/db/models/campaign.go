package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/*
   Column        |          Type           | Nullable |      Default
-----------------+-------------------------+----------+--------------------
 campaign_id     | uuid                    | not null | gen_random_uuid()
 name            | character varying(256)  | not null |
 advertiser_id   | uuid                    | not null | fk advertisers
 status          | character varying(16)   | not null | 'draft'
 probability     | integer                 | not null | 0..100
 start_date      | date                    | not null |
 end_date        | date                    | not null | >= start_date
 total_budget    | numeric(14,2)           | not null | >= 0
 notes           | text                    |          |
 created_by      | uuid                    | not null |
 created_at      | timestamptz             | not null | now()
 updated_at      | timestamptz             | not null | now()
*/

const (
	CampaignStatusDraft     = "draft"
	CampaignStatusPending   = "pending"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

type Campaign struct {
	CampaignID   uuid.UUID       `db:"campaign_id"`
	Name         string          `db:"name"`
	AdvertiserID uuid.UUID       `db:"advertiser_id"`
	Status       string          `db:"status"`
	Probability  int             `db:"probability"`
	StartDate    time.Time       `db:"start_date"`
	EndDate      time.Time       `db:"end_date"`
	TotalBudget  decimal.Decimal `db:"total_budget"`
	Notes        string          `db:"notes"`
	CreatedBy    uuid.UUID       `db:"created_by"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// ValidCampaignTransition reports whether a campaign may move from one
// status to another. Completed and cancelled are terminal.
func ValidCampaignTransition(from, to string) bool {
	if from == to {
		return true
	}
	allowed := map[string][]string{
		CampaignStatusDraft:   {CampaignStatusPending, CampaignStatusActive, CampaignStatusCancelled},
		CampaignStatusPending: {CampaignStatusActive, CampaignStatusCancelled},
		CampaignStatusActive:  {CampaignStatusPaused, CampaignStatusCompleted, CampaignStatusCancelled},
		CampaignStatusPaused:  {CampaignStatusActive, CampaignStatusCompleted, CampaignStatusCancelled},
	}
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}
