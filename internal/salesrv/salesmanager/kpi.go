package salesmanager

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

// KPIRequest sets the campaign's KPI goals and gate.
type KPIRequest struct {
	CampaignID        uuid.UUID       `json:"campaign_id" validate:"required"`
	ConversionType    string          `json:"conversion_type"`
	GoalCPA           decimal.Decimal `json:"goal_cpa" validate:"nonneg_decimal"`
	TargetVisits      int64           `json:"target_visits" validate:"min=0"`
	TargetConversions int64           `json:"target_conversions" validate:"min=0"`
	ClientCanUpdate   bool            `json:"client_can_update"`
}

// KPIActualsRequest updates the measured numbers. Client-role users may
// write actuals only when the KPI allows it.
type KPIActualsRequest struct {
	ActualVisits      int64 `json:"actual_visits" validate:"min=0"`
	ActualConversions int64 `json:"actual_conversions" validate:"min=0"`
}

// UpsertKPI writes the campaign's single KPI row. Only staff roles set goals.
func UpsertKPI(ctx context.Context, req *KPIRequest) (*models.KPI, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	user := salescommon.GetUserContext(ctx)
	if user == nil || user.Role == salescommon.RoleClient {
		return nil, ErrNotAllowed
	}
	kpi := &models.KPI{
		CampaignID:        req.CampaignID,
		ConversionType:    req.ConversionType,
		GoalCPA:           req.GoalCPA,
		TargetVisits:      req.TargetVisits,
		TargetConversions: req.TargetConversions,
		ClientCanUpdate:   req.ClientCanUpdate,
		UpdatedBy:         user.UserID,
	}
	existing, err := db.DB(ctx).GetKPIByCampaign(ctx, req.CampaignID)
	if err == nil {
		kpi.ActualVisits = existing.ActualVisits
		kpi.ActualConversions = existing.ActualConversions
	}
	if err := db.DB(ctx).UpsertKPI(ctx, kpi); err != nil {
		return nil, err
	}
	return kpi, nil
}

// UpdateKPIActuals records measured visits and conversions.
func UpdateKPIActuals(ctx context.Context, campaignID uuid.UUID, req *KPIActualsRequest) (*models.KPI, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	user := salescommon.GetUserContext(ctx)
	if user == nil {
		return nil, ErrNotAllowed
	}
	kpi, err := db.DB(ctx).GetKPIByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if user.Role == salescommon.RoleClient && !kpi.ClientCanUpdate {
		return nil, ErrNotAllowed.Msg("client updates are disabled for this KPI")
	}
	kpi.ActualVisits = req.ActualVisits
	kpi.ActualConversions = req.ActualConversions
	kpi.UpdatedBy = user.UserID
	if err := db.DB(ctx).UpsertKPI(ctx, kpi); err != nil {
		return nil, err
	}
	return kpi, nil
}

// KPIReport is the KPI with its derived cost-per-acquisition numbers.
type KPIReport struct {
	KPI       *models.KPI     `json:"kpi"`
	Spend     decimal.Decimal `json:"spend"`
	ActualCPA decimal.Decimal `json:"actual_cpa"`
}

// GetKPIReport loads the KPI and computes actual CPA from billed spend.
func GetKPIReport(ctx context.Context, campaignID uuid.UUID) (*KPIReport, apperrors.Error) {
	kpi, err := db.DB(ctx).GetKPIByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	spend, err := db.DB(ctx).GetCampaignSpend(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return &KPIReport{
		KPI:       kpi,
		Spend:     spend,
		ActualCPA: kpi.ActualCPA(spend),
	}, nil
}
