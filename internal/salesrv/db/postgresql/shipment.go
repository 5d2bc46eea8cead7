package postgresql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/dberror"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

const shipmentColumns = "shipment_id, campaign_id, show_id, description, carrier, tracking_number, status, shipped_at, delivered_at, created_at, updated_at"

func scanShipment(row interface{ Scan(...any) error }) (*models.Shipment, error) {
	s := &models.Shipment{}
	err := row.Scan(&s.ShipmentID, &s.CampaignID, &s.ShowID, &s.Description, &s.Carrier,
		&s.TrackingNumber, &s.Status, &s.ShippedAt, &s.DeliveredAt, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (sm *salesManager) CreateShipment(ctx context.Context, s *models.Shipment) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	if s.ShipmentID == uuid.Nil {
		s.ShipmentID = uuid.New()
	}
	if s.Status == "" {
		s.Status = models.ShipmentStatusPending
	}
	query := `
		INSERT INTO shipments (shipment_id, campaign_id, show_id, description, carrier, tracking_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING shipment_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		s.ShipmentID, s.CampaignID, s.ShowID, s.Description, s.Carrier, s.TrackingNumber, s.Status).Scan(&id)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidReference.Msg("campaign or show not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert shipment")
		return dberror.ErrDatabase.Err(err)
	}
	s.ShipmentID = id
	return nil
}

func (sm *salesManager) GetShipment(ctx context.Context, shipmentID uuid.UUID) (*models.Shipment, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	s, err := scanShipment(sm.conn().QueryRowContext(ctx,
		`SELECT `+shipmentColumns+` FROM shipments WHERE shipment_id = $1;`, shipmentID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("shipment not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve shipment")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return s, nil
}

func (sm *salesManager) UpdateShipment(ctx context.Context, s *models.Shipment) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	query := `
		UPDATE shipments
		SET description = $1, carrier = $2, tracking_number = $3, status = $4,
		    shipped_at = $5, delivered_at = $6, updated_at = now()
		WHERE shipment_id = $7
		RETURNING shipment_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		s.Description, s.Carrier, s.TrackingNumber, s.Status, s.ShippedAt, s.DeliveredAt, s.ShipmentID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("shipment not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update shipment")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (sm *salesManager) DeleteShipment(ctx context.Context, shipmentID uuid.UUID) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	_, err := sm.conn().ExecContext(ctx, `DELETE FROM shipments WHERE shipment_id = $1`, shipmentID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete shipment")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// ListShipments filters by campaign when campaignID is set.
func (sm *salesManager) ListShipments(ctx context.Context, campaignID uuid.UUID) ([]*models.Shipment, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	var campParam any
	if campaignID != uuid.Nil {
		campParam = campaignID
	}
	rows, err := sm.conn().QueryContext(ctx, `
		SELECT `+shipmentColumns+`
		FROM shipments
		WHERE ($1::uuid IS NULL OR campaign_id = $1)
		ORDER BY created_at DESC;
	`, campParam)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list shipments")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.Shipment
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return out, nil
}
