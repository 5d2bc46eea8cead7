// Package salesmanager holds the business rules of the sales service:
// campaign and invoice lifecycles, budget roll-up, proposal versioning,
// pre-bill generation and KPI math. Handlers parse requests; this package
// decides.
package salesmanager

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

// CampaignRequest carries the writable campaign fields.
type CampaignRequest struct {
	Name         string          `json:"name" validate:"required,max=256"`
	AdvertiserID uuid.UUID       `json:"advertiser_id" validate:"required"`
	Probability  int             `json:"probability" validate:"min=0,max=100"`
	StartDate    time.Time       `json:"start_date" validate:"required"`
	EndDate      time.Time       `json:"end_date" validate:"required"`
	TotalBudget  decimal.Decimal `json:"total_budget" validate:"nonneg_decimal"`
	Notes        string          `json:"notes"`
}

func (req *CampaignRequest) validateDates() apperrors.Error {
	if req.EndDate.Before(req.StartDate) {
		return ErrInvalidRequest.Msg("end_date must not precede start_date")
	}
	return nil
}

func CreateCampaign(ctx context.Context, req *CampaignRequest) (*models.Campaign, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := req.validateDates(); err != nil {
		return nil, err
	}
	user := salescommon.GetUserContext(ctx)
	if user == nil {
		return nil, ErrNotAllowed
	}
	c := &models.Campaign{
		Name:         req.Name,
		AdvertiserID: req.AdvertiserID,
		Status:       models.CampaignStatusDraft,
		Probability:  req.Probability,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		TotalBudget:  req.TotalBudget,
		Notes:        req.Notes,
		CreatedBy:    user.UserID,
	}
	if err := db.DB(ctx).CreateCampaign(ctx, c); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Str("campaign", c.CampaignID.String()).Msg("campaign created")
	return c, nil
}

func GetCampaign(ctx context.Context, campaignID uuid.UUID) (*models.Campaign, apperrors.Error) {
	return db.DB(ctx).GetCampaign(ctx, campaignID)
}

func ListCampaigns(ctx context.Context, status string, advertiserID uuid.UUID) ([]*models.Campaign, apperrors.Error) {
	return db.DB(ctx).ListCampaigns(ctx, status, advertiserID)
}

// UpdateCampaign rewrites the editable fields. Status moves only through
// UpdateCampaignStatus.
func UpdateCampaign(ctx context.Context, campaignID uuid.UUID, req *CampaignRequest) (*models.Campaign, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := req.validateDates(); err != nil {
		return nil, err
	}
	c, err := db.DB(ctx).GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.AdvertiserID = req.AdvertiserID
	c.Probability = req.Probability
	c.StartDate = req.StartDate
	c.EndDate = req.EndDate
	c.TotalBudget = req.TotalBudget
	c.Notes = req.Notes
	if err := db.DB(ctx).UpdateCampaign(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCampaignStatus applies the campaign state machine.
func UpdateCampaignStatus(ctx context.Context, campaignID uuid.UUID, status string) (*models.Campaign, apperrors.Error) {
	c, err := db.DB(ctx).GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !models.ValidCampaignTransition(c.Status, status) {
		return nil, ErrInvalidTransition.Msg("campaign cannot move from " + c.Status + " to " + status)
	}
	c.Status = status
	if err := db.DB(ctx).UpdateCampaign(ctx, c); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Str("campaign", c.CampaignID.String()).Str("status", status).Msg("campaign status changed")
	return c, nil
}

func DeleteCampaign(ctx context.Context, campaignID uuid.UUID) apperrors.Error {
	return db.DB(ctx).DeleteCampaign(ctx, campaignID)
}

// CampaignSummary is the campaign with its derived financials.
type CampaignSummary struct {
	Campaign *models.Campaign `json:"campaign"`
	Spend    decimal.Decimal  `json:"spend"`
	Remain   decimal.Decimal  `json:"remaining_budget"`
}

// GetCampaignSummary computes billed spend and remaining budget.
func GetCampaignSummary(ctx context.Context, campaignID uuid.UUID) (*CampaignSummary, apperrors.Error) {
	c, err := db.DB(ctx).GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	spend, err := db.DB(ctx).GetCampaignSpend(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return &CampaignSummary{
		Campaign: c,
		Spend:    spend,
		Remain:   c.TotalBudget.Sub(spend),
	}, nil
}
