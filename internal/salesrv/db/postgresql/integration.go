package postgresql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/dberror"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

const integrationColumns = "integration_id, provider, display_name, config, enabled, last_synced_at, sync_status, sync_error, created_at, updated_at"

func scanIntegration(row interface{ Scan(...any) error }) (*models.Integration, error) {
	in := &models.Integration{}
	err := row.Scan(&in.IntegrationID, &in.Provider, &in.DisplayName, &in.Config, &in.Enabled,
		&in.LastSyncedAt, &in.SyncStatus, &in.SyncError, &in.CreatedAt, &in.UpdatedAt)
	return in, err
}

// UpsertIntegration writes the provider's integration row. Sync state is
// preserved on update; only UpdateIntegrationSyncState touches it.
func (sm *salesManager) UpsertIntegration(ctx context.Context, in *models.Integration) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	if in.IntegrationID == uuid.Nil {
		in.IntegrationID = uuid.New()
	}
	if in.SyncStatus == "" {
		in.SyncStatus = models.SyncStatusNever
	}
	query := `
		INSERT INTO integrations (integration_id, provider, display_name, config, enabled, sync_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (provider)
		DO UPDATE SET display_name = EXCLUDED.display_name,
		              config = EXCLUDED.config,
		              enabled = EXCLUDED.enabled,
		              updated_at = now()
		RETURNING integration_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		in.IntegrationID, in.Provider, in.DisplayName, in.Config, in.Enabled, in.SyncStatus).Scan(&id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to upsert integration")
		return dberror.ErrDatabase.Err(err)
	}
	in.IntegrationID = id
	return nil
}

func (sm *salesManager) GetIntegrationByProvider(ctx context.Context, provider string) (*models.Integration, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	in, err := scanIntegration(sm.conn().QueryRowContext(ctx,
		`SELECT `+integrationColumns+` FROM integrations WHERE provider = $1;`, provider))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("integration not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve integration")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return in, nil
}

func (sm *salesManager) ListIntegrations(ctx context.Context) ([]*models.Integration, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	rows, err := sm.conn().QueryContext(ctx,
		`SELECT `+integrationColumns+` FROM integrations ORDER BY provider;`)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list integrations")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.Integration
	for rows.Next() {
		in, err := scanIntegration(rows)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return out, nil
}

func (sm *salesManager) UpdateIntegrationSyncState(ctx context.Context, integrationID uuid.UUID, status, syncErr string, at time.Time) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	query := `
		UPDATE integrations
		SET sync_status = $1, sync_error = $2,
		    last_synced_at = CASE WHEN $1 = 'ok' THEN $3 ELSE last_synced_at END,
		    updated_at = now()
		WHERE integration_id = $4
		RETURNING integration_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query, status, syncErr, at, integrationID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("integration not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update integration sync state")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}
