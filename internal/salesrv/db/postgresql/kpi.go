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

const kpiColumns = "kpi_id, campaign_id, conversion_type, goal_cpa, target_visits, target_conversions, actual_visits, actual_conversions, client_can_update, updated_by, created_at, updated_at"

func scanKPI(row interface{ Scan(...any) error }) (*models.KPI, error) {
	k := &models.KPI{}
	err := row.Scan(&k.KpiID, &k.CampaignID, &k.ConversionType, &k.GoalCPA,
		&k.TargetVisits, &k.TargetConversions, &k.ActualVisits, &k.ActualConversions,
		&k.ClientCanUpdate, &k.UpdatedBy, &k.CreatedAt, &k.UpdatedAt)
	return k, err
}

// UpsertKPI writes the campaign's KPI row, keyed by campaign_id.
func (sm *salesManager) UpsertKPI(ctx context.Context, kpi *models.KPI) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	if kpi.KpiID == uuid.Nil {
		kpi.KpiID = uuid.New()
	}
	query := `
		INSERT INTO kpis (kpi_id, campaign_id, conversion_type, goal_cpa, target_visits, target_conversions, actual_visits, actual_conversions, client_can_update, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (campaign_id)
		DO UPDATE SET conversion_type = EXCLUDED.conversion_type,
		              goal_cpa = EXCLUDED.goal_cpa,
		              target_visits = EXCLUDED.target_visits,
		              target_conversions = EXCLUDED.target_conversions,
		              actual_visits = EXCLUDED.actual_visits,
		              actual_conversions = EXCLUDED.actual_conversions,
		              client_can_update = EXCLUDED.client_can_update,
		              updated_by = EXCLUDED.updated_by,
		              updated_at = now()
		RETURNING kpi_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		kpi.KpiID, kpi.CampaignID, kpi.ConversionType, kpi.GoalCPA,
		kpi.TargetVisits, kpi.TargetConversions, kpi.ActualVisits, kpi.ActualConversions,
		kpi.ClientCanUpdate, kpi.UpdatedBy).Scan(&id)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidReference.Msg("campaign not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to upsert kpi")
		return dberror.ErrDatabase.Err(err)
	}
	kpi.KpiID = id
	return nil
}

func (sm *salesManager) GetKPIByCampaign(ctx context.Context, campaignID uuid.UUID) (*models.KPI, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	k, err := scanKPI(sm.conn().QueryRowContext(ctx,
		`SELECT `+kpiColumns+` FROM kpis WHERE campaign_id = $1;`, campaignID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("kpi not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve kpi")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return k, nil
}
