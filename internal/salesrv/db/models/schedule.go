package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	SlotTypePreroll  = "preroll"
	SlotTypeMidroll  = "midroll"
	SlotTypePostroll = "postroll"
	SlotTypeHostRead = "host_read"
)

const (
	SlotStatusBooked   = "booked"
	SlotStatusAired    = "aired"
	SlotStatusBilled   = "billed"
	SlotStatusReleased = "released"
)

// ScheduleSlot is one placement of a campaign on a show. EpisodeID is nil
// until the placement is matched to a concrete episode.
type ScheduleSlot struct {
	SlotID     uuid.UUID       `db:"slot_id"`
	CampaignID uuid.UUID       `db:"campaign_id"`
	ShowID     uuid.UUID       `db:"show_id"`
	EpisodeID  *uuid.UUID      `db:"episode_id"`
	SlotType   string          `db:"slot_type"`
	AirDate    time.Time       `db:"air_date"`
	Rate       decimal.Decimal `db:"rate"`
	Status     string          `db:"status"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// ValidSlotTransition reports whether a slot may move between the two
// statuses. Released slots were billed once and voided; they may air or be
// billed again.
func ValidSlotTransition(from, to string) bool {
	if from == to {
		return true
	}
	allowed := map[string][]string{
		SlotStatusBooked:   {SlotStatusAired, SlotStatusBilled},
		SlotStatusAired:    {SlotStatusBilled},
		SlotStatusBilled:   {SlotStatusReleased},
		SlotStatusReleased: {SlotStatusAired, SlotStatusBilled},
	}
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}

func ValidSlotType(t string) bool {
	switch t {
	case SlotTypePreroll, SlotTypeMidroll, SlotTypePostroll, SlotTypeHostRead:
		return true
	}
	return false
}
