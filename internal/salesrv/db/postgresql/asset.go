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

const assetColumns = "asset_id, campaign_id, file_name, content_type, byte_size, object_key, status, uploaded_by, created_at, updated_at"

func scanAsset(row interface{ Scan(...any) error }) (*models.CreativeAsset, error) {
	a := &models.CreativeAsset{}
	err := row.Scan(&a.AssetID, &a.CampaignID, &a.FileName, &a.ContentType, &a.ByteSize,
		&a.ObjectKey, &a.Status, &a.UploadedBy, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (sm *salesManager) CreateAsset(ctx context.Context, a *models.CreativeAsset) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	if a.AssetID == uuid.Nil {
		a.AssetID = uuid.New()
	}
	if a.Status == "" {
		a.Status = models.AssetStatusPending
	}
	query := `
		INSERT INTO creative_assets (asset_id, campaign_id, file_name, content_type, byte_size, object_key, status, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING asset_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		a.AssetID, a.CampaignID, a.FileName, a.ContentType, a.ByteSize,
		a.ObjectKey, a.Status, a.UploadedBy).Scan(&id)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			switch pgErr.Code {
			case "23503":
				return dberror.ErrInvalidReference.Msg("campaign not found")
			case "23505":
				return dberror.ErrAlreadyExists.Msg("asset already exists")
			}
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert creative asset")
		return dberror.ErrDatabase.Err(err)
	}
	a.AssetID = id
	return nil
}

func (sm *salesManager) GetAsset(ctx context.Context, assetID uuid.UUID) (*models.CreativeAsset, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	a, err := scanAsset(sm.conn().QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM creative_assets WHERE asset_id = $1;`, assetID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("asset not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve creative asset")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return a, nil
}

func (sm *salesManager) UpdateAssetStatus(ctx context.Context, assetID uuid.UUID, status string) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	query := `UPDATE creative_assets SET status = $1, updated_at = now() WHERE asset_id = $2 RETURNING asset_id;`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query, status, assetID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("asset not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update asset status")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (sm *salesManager) ListAssetsByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*models.CreativeAsset, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	rows, err := sm.conn().QueryContext(ctx,
		`SELECT `+assetColumns+` FROM creative_assets WHERE campaign_id = $1 ORDER BY created_at DESC;`, campaignID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list creative assets")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.CreativeAsset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return out, nil
}
