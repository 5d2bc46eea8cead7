package salesmanager

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

// ApprovalRequest submits a new ad-approval request.
type ApprovalRequest struct {
	CampaignID    uuid.UUID  `json:"campaign_id" validate:"required"`
	ShowID        uuid.UUID  `json:"show_id" validate:"required"`
	AdType        string     `json:"ad_type" validate:"required"`
	DurationSecs  int        `json:"duration_secs" validate:"min=0"`
	Script        string     `json:"script"`
	TalkingPoints string     `json:"talking_points"`
	Priority      string     `json:"priority"`
	Deadline      *time.Time `json:"deadline"`
}

func validPriority(p string) bool {
	switch p {
	case models.ApprovalPriorityLow, models.ApprovalPriorityMedium, models.ApprovalPriorityHigh:
		return true
	}
	return false
}

// SubmitApproval creates a pending approval request for a campaign's spot.
func SubmitApproval(ctx context.Context, req *ApprovalRequest) (*models.Approval, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if !models.ValidSlotType(req.AdType) {
		return nil, ErrInvalidRequest.Msg("unknown ad type " + req.AdType)
	}
	if req.Priority == "" {
		req.Priority = models.ApprovalPriorityMedium
	}
	if !validPriority(req.Priority) {
		return nil, ErrInvalidRequest.Msg("unknown priority " + req.Priority)
	}
	user := salescommon.GetUserContext(ctx)
	if user == nil {
		return nil, ErrNotAllowed
	}
	a := &models.Approval{
		CampaignID:    req.CampaignID,
		ShowID:        req.ShowID,
		AdType:        req.AdType,
		DurationSecs:  req.DurationSecs,
		Script:        req.Script,
		TalkingPoints: req.TalkingPoints,
		Priority:      req.Priority,
		Deadline:      req.Deadline,
		Status:        models.ApprovalStatusPending,
		SubmittedBy:   user.UserID,
	}
	if err := db.DB(ctx).CreateApproval(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func GetApproval(ctx context.Context, approvalID uuid.UUID) (*models.Approval, apperrors.Error) {
	return db.DB(ctx).GetApproval(ctx, approvalID)
}

func ListApprovals(ctx context.Context, status string) ([]*models.Approval, apperrors.Error) {
	return db.DB(ctx).ListApprovals(ctx, status)
}

func ListApprovalEvents(ctx context.Context, approvalID uuid.UUID) ([]*models.ApprovalEvent, apperrors.Error) {
	return db.DB(ctx).ListApprovalEvents(ctx, approvalID)
}

// TransitionApproval moves the approval through its state machine and
// appends an audit event carrying the reviewer's comment.
func TransitionApproval(ctx context.Context, approvalID uuid.UUID, toStatus, comment string) (*models.Approval, apperrors.Error) {
	user := salescommon.GetUserContext(ctx)
	if user == nil {
		return nil, ErrNotAllowed
	}
	a, err := db.DB(ctx).GetApproval(ctx, approvalID)
	if err != nil {
		return nil, err
	}
	if !models.ValidApprovalTransition(a.Status, toStatus) {
		return nil, ErrInvalidTransition.Msg("approval cannot move from " + a.Status + " to " + toStatus)
	}
	event := &models.ApprovalEvent{
		FromStatus: a.Status,
		ToStatus:   toStatus,
		Comment:    comment,
		ActorID:    user.UserID,
	}
	if err := db.DB(ctx).UpdateApprovalStatus(ctx, approvalID, event); err != nil {
		return nil, err
	}
	a.Status = toStatus
	log.Ctx(ctx).Info().Str("approval", approvalID.String()).Str("status", toStatus).Msg("approval transitioned")
	return a, nil
}
