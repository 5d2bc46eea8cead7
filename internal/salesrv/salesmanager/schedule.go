package salesmanager

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

// SlotRequest carries the writable fields of a schedule slot.
type SlotRequest struct {
	CampaignID uuid.UUID       `json:"campaign_id" validate:"required"`
	ShowID     uuid.UUID       `json:"show_id" validate:"required"`
	EpisodeID  *uuid.UUID      `json:"episode_id"`
	SlotType   string          `json:"slot_type" validate:"required"`
	AirDate    time.Time       `json:"air_date" validate:"required"`
	Rate       decimal.Decimal `json:"rate" validate:"nonneg_decimal"`
}

// CreateScheduleSlot books a slot. The air date must fall inside the
// campaign's flight window.
func CreateScheduleSlot(ctx context.Context, req *SlotRequest) (*models.ScheduleSlot, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if !models.ValidSlotType(req.SlotType) {
		return nil, ErrInvalidRequest.Msg("unknown slot type " + req.SlotType)
	}
	c, err := db.DB(ctx).GetCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	if req.AirDate.Before(c.StartDate) || req.AirDate.After(c.EndDate) {
		return nil, ErrInvalidRequest.Msg("air_date is outside the campaign flight window")
	}
	slot := &models.ScheduleSlot{
		CampaignID: req.CampaignID,
		ShowID:     req.ShowID,
		EpisodeID:  req.EpisodeID,
		SlotType:   req.SlotType,
		AirDate:    req.AirDate,
		Rate:       req.Rate,
		Status:     models.SlotStatusBooked,
	}
	if err := db.DB(ctx).CreateScheduleSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func GetScheduleSlot(ctx context.Context, slotID uuid.UUID) (*models.ScheduleSlot, apperrors.Error) {
	return db.DB(ctx).GetScheduleSlot(ctx, slotID)
}

func ListSlotsByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*models.ScheduleSlot, apperrors.Error) {
	return db.DB(ctx).ListSlotsByCampaign(ctx, campaignID)
}

// UpdateScheduleSlot rewrites a slot's placement and rate. Billed slots are
// immutable; status transitions other than booked->aired go through billing.
func UpdateScheduleSlot(ctx context.Context, slotID uuid.UUID, req *SlotRequest) (*models.ScheduleSlot, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if !models.ValidSlotType(req.SlotType) {
		return nil, ErrInvalidRequest.Msg("unknown slot type " + req.SlotType)
	}
	slot, err := db.DB(ctx).GetScheduleSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.Status == models.SlotStatusBilled {
		return nil, ErrImmutable.Msg("slot is billed")
	}
	slot.ShowID = req.ShowID
	slot.EpisodeID = req.EpisodeID
	slot.SlotType = req.SlotType
	slot.AirDate = req.AirDate
	slot.Rate = req.Rate
	if err := db.DB(ctx).UpdateScheduleSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// MarkSlotAired records that a booked slot ran.
func MarkSlotAired(ctx context.Context, slotID uuid.UUID) (*models.ScheduleSlot, apperrors.Error) {
	slot, err := db.DB(ctx).GetScheduleSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if !models.ValidSlotTransition(slot.Status, models.SlotStatusAired) {
		return nil, ErrInvalidTransition.Msg("slot cannot air from " + slot.Status)
	}
	slot.Status = models.SlotStatusAired
	if err := db.DB(ctx).UpdateScheduleSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func DeleteScheduleSlot(ctx context.Context, slotID uuid.UUID) apperrors.Error {
	slot, err := db.DB(ctx).GetScheduleSlot(ctx, slotID)
	if err != nil {
		return err
	}
	if slot.Status == models.SlotStatusBilled {
		return ErrImmutable.Msg("slot is billed")
	}
	return db.DB(ctx).DeleteScheduleSlot(ctx, slotID)
}
