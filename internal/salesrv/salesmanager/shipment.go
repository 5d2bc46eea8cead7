package salesmanager

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

// ShipmentRequest carries the writable shipment fields.
type ShipmentRequest struct {
	CampaignID     uuid.UUID `json:"campaign_id" validate:"required"`
	ShowID         uuid.UUID `json:"show_id" validate:"required"`
	Description    string    `json:"description"`
	Carrier        string    `json:"carrier"`
	TrackingNumber string    `json:"tracking_number"`
}

func CreateShipment(ctx context.Context, req *ShipmentRequest) (*models.Shipment, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	s := &models.Shipment{
		CampaignID:     req.CampaignID,
		ShowID:         req.ShowID,
		Description:    req.Description,
		Carrier:        req.Carrier,
		TrackingNumber: req.TrackingNumber,
		Status:         models.ShipmentStatusPending,
	}
	if err := db.DB(ctx).CreateShipment(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func GetShipment(ctx context.Context, shipmentID uuid.UUID) (*models.Shipment, apperrors.Error) {
	return db.DB(ctx).GetShipment(ctx, shipmentID)
}

func ListShipments(ctx context.Context, campaignID uuid.UUID) ([]*models.Shipment, apperrors.Error) {
	return db.DB(ctx).ListShipments(ctx, campaignID)
}

// UpdateShipment rewrites the descriptive fields without touching status.
func UpdateShipment(ctx context.Context, shipmentID uuid.UUID, req *ShipmentRequest) (*models.Shipment, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	s, err := db.DB(ctx).GetShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	s.Description = req.Description
	s.Carrier = req.Carrier
	s.TrackingNumber = req.TrackingNumber
	if err := db.DB(ctx).UpdateShipment(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateShipmentStatus applies the shipment state machine, stamping
// shipped_at and delivered_at as the shipment advances.
func UpdateShipmentStatus(ctx context.Context, shipmentID uuid.UUID, status string) (*models.Shipment, apperrors.Error) {
	s, err := db.DB(ctx).GetShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if !models.ValidShipmentTransition(s.Status, status) {
		return nil, ErrInvalidTransition.Msg("shipment cannot move from " + s.Status + " to " + status)
	}
	now := time.Now()
	s.Status = status
	switch status {
	case models.ShipmentStatusShipped:
		s.ShippedAt = &now
	case models.ShipmentStatusDelivered:
		s.DeliveredAt = &now
	}
	if err := db.DB(ctx).UpdateShipment(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func DeleteShipment(ctx context.Context, shipmentID uuid.UUID) apperrors.Error {
	return db.DB(ctx).DeleteShipment(ctx, shipmentID)
}
