package postgresql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/dberror"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

const campaignColumns = "campaign_id, name, advertiser_id, status, probability, start_date, end_date, total_budget, notes, created_by, created_at, updated_at"

func scanCampaign(row interface{ Scan(...any) error }) (*models.Campaign, error) {
	c := &models.Campaign{}
	err := row.Scan(&c.CampaignID, &c.Name, &c.AdvertiserID, &c.Status, &c.Probability, &c.StartDate, &c.EndDate,
		&c.TotalBudget, &c.Notes, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (sm *salesManager) CreateCampaign(ctx context.Context, c *models.Campaign) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	if c.CampaignID == uuid.Nil {
		c.CampaignID = uuid.New()
	}
	if c.Status == "" {
		c.Status = models.CampaignStatusDraft
	}
	query := `
		INSERT INTO campaigns (campaign_id, name, advertiser_id, status, probability, start_date, end_date, total_budget, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING campaign_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		c.CampaignID, c.Name, c.AdvertiserID, c.Status, c.Probability, c.StartDate, c.EndDate,
		c.TotalBudget, c.Notes, c.CreatedBy).Scan(&id)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			switch pgErr.Code {
			case "23503":
				return dberror.ErrInvalidReference.Msg("advertiser not found")
			case "23505":
				return dberror.ErrAlreadyExists.Msg("campaign already exists")
			}
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert campaign")
		return dberror.ErrDatabase.Err(err)
	}
	c.CampaignID = id
	return nil
}

func (sm *salesManager) GetCampaign(ctx context.Context, campaignID uuid.UUID) (*models.Campaign, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	c, err := scanCampaign(sm.conn().QueryRowContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE campaign_id = $1;`, campaignID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("campaign not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve campaign")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return c, nil
}

func (sm *salesManager) UpdateCampaign(ctx context.Context, c *models.Campaign) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	query := `
		UPDATE campaigns
		SET name = $1, advertiser_id = $2, status = $3, probability = $4, start_date = $5,
		    end_date = $6, total_budget = $7, notes = $8, updated_at = now()
		WHERE campaign_id = $9
		RETURNING campaign_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		c.Name, c.AdvertiserID, c.Status, c.Probability, c.StartDate,
		c.EndDate, c.TotalBudget, c.Notes, c.CampaignID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("campaign not found")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidReference.Msg("advertiser not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update campaign")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (sm *salesManager) DeleteCampaign(ctx context.Context, campaignID uuid.UUID) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	_, err := sm.conn().ExecContext(ctx, `DELETE FROM campaigns WHERE campaign_id = $1`, campaignID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrConstraintViolation.Msg("campaign has schedule slots or invoices")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete campaign")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// ListCampaigns filters by status and advertiser when either is set.
func (sm *salesManager) ListCampaigns(ctx context.Context, status string, advertiserID uuid.UUID) ([]*models.Campaign, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	query := `
		SELECT ` + campaignColumns + `
		FROM campaigns
		WHERE ($1 = '' OR status = $1)
		  AND ($2::uuid IS NULL OR advertiser_id = $2)
		ORDER BY start_date DESC, name;
	`
	var advParam any
	if advertiserID != uuid.Nil {
		advParam = advertiserID
	}
	rows, err := sm.conn().QueryContext(ctx, query, status, advParam)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list campaigns")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return out, nil
}

// GetCampaignSpend sums the rates of the campaign's billed slots.
func (sm *salesManager) GetCampaignSpend(ctx context.Context, campaignID uuid.UUID) (decimal.Decimal, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return decimal.Zero, err
	}
	query := `
		SELECT COALESCE(SUM(rate), 0)
		FROM schedule_slots
		WHERE campaign_id = $1 AND status = 'billed';
	`
	var spend decimal.Decimal
	if err := sm.conn().QueryRowContext(ctx, query, campaignID).Scan(&spend); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to compute campaign spend")
		return decimal.Zero, dberror.ErrDatabase.Err(err)
	}
	return spend, nil
}
