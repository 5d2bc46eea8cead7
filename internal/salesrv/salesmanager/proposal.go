package salesmanager

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

// ProposalRequest carries the writable proposal fields. Body is the
// free-form document: line items, terms, notes.
type ProposalRequest struct {
	AdvertiserID uuid.UUID       `json:"advertiser_id" validate:"required"`
	Title        string          `json:"title" validate:"required,max=256"`
	Status       string          `json:"status"`
	Body         json.RawMessage `json:"body"`
	ChangeNote   string          `json:"change_note"`
}

func bodyToJSONB(raw json.RawMessage) (pgtype.JSONB, apperrors.Error) {
	var body pgtype.JSONB
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	if !json.Valid(raw) {
		return body, ErrInvalidRequest.Msg("body is not valid JSON")
	}
	if err := body.Set([]byte(raw)); err != nil {
		return body, ErrInvalidRequest.Msg("body is not valid JSON")
	}
	return body, nil
}

func validProposalStatus(s string) bool {
	switch s {
	case models.ProposalStatusDraft, models.ProposalStatusSent,
		models.ProposalStatusApproved, models.ProposalStatusRejected:
		return true
	}
	return false
}

// CreateProposal writes a new proposal at version 1.
func CreateProposal(ctx context.Context, req *ProposalRequest) (*models.Proposal, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.Status == "" {
		req.Status = models.ProposalStatusDraft
	}
	if !validProposalStatus(req.Status) {
		return nil, ErrInvalidRequest.Msg("unknown proposal status " + req.Status)
	}
	body, err := bodyToJSONB(req.Body)
	if err != nil {
		return nil, err
	}
	user := salescommon.GetUserContext(ctx)
	if user == nil {
		return nil, ErrNotAllowed
	}
	p := &models.Proposal{
		AdvertiserID: req.AdvertiserID,
		Title:        req.Title,
		Status:       req.Status,
		Body:         body,
		CreatedBy:    user.UserID,
	}
	if err := db.DB(ctx).CreateProposal(ctx, p, req.ChangeNote); err != nil {
		return nil, err
	}
	return p, nil
}

func GetProposal(ctx context.Context, proposalID uuid.UUID) (*models.Proposal, apperrors.Error) {
	return db.DB(ctx).GetProposal(ctx, proposalID)
}

func ListProposals(ctx context.Context, status string) ([]*models.Proposal, apperrors.Error) {
	return db.DB(ctx).ListProposals(ctx, status)
}

// ListProposalVersions returns the history newest first.
func ListProposalVersions(ctx context.Context, proposalID uuid.UUID) ([]*models.ProposalVersion, apperrors.Error) {
	versions, err := db.DB(ctx).ListProposalVersions(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	sortVersionsNewestFirst(versions)
	return versions, nil
}

func sortVersionsNewestFirst(versions []*models.ProposalVersion) {
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].VersionNum > versions[j].VersionNum
	})
}

func GetProposalVersion(ctx context.Context, proposalID uuid.UUID, versionNum int) (*models.ProposalVersion, apperrors.Error) {
	if versionNum < 1 {
		return nil, ErrInvalidRequest.Msg("version numbers start at 1")
	}
	return db.DB(ctx).GetProposalVersion(ctx, proposalID, versionNum)
}

// UpdateProposal rewrites the proposal and appends a new version.
func UpdateProposal(ctx context.Context, proposalID uuid.UUID, req *ProposalRequest) (*models.Proposal, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	user := salescommon.GetUserContext(ctx)
	if user == nil {
		return nil, ErrNotAllowed
	}
	p, err := db.DB(ctx).GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if req.Status == "" {
		req.Status = p.Status
	}
	if !validProposalStatus(req.Status) {
		return nil, ErrInvalidRequest.Msg("unknown proposal status " + req.Status)
	}
	body, bErr := bodyToJSONB(req.Body)
	if bErr != nil {
		return nil, bErr
	}
	p.Title = req.Title
	p.Status = req.Status
	p.Body = body
	if err := db.DB(ctx).UpdateProposalWithVersion(ctx, p, req.ChangeNote, user.UserID); err != nil {
		return nil, err
	}
	return p, nil
}

// RestoreProposalVersion copies an old version's content into the live
// proposal as a NEW version; history is never rewritten.
func RestoreProposalVersion(ctx context.Context, proposalID uuid.UUID, versionNum int) (*models.Proposal, apperrors.Error) {
	user := salescommon.GetUserContext(ctx)
	if user == nil {
		return nil, ErrNotAllowed
	}
	v, err := GetProposalVersion(ctx, proposalID, versionNum)
	if err != nil {
		return nil, err
	}
	p, err := db.DB(ctx).GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if v.VersionNum == p.CurrentVersion {
		return p, nil
	}
	p.Title = v.Title
	p.Status = v.Status
	p.Body = v.Body
	note := "restored from version " + strconv.Itoa(versionNum)
	if err := db.DB(ctx).UpdateProposalWithVersion(ctx, p, note, user.UserID); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Str("proposal", proposalID.String()).Int("version", versionNum).Msg("proposal version restored")
	return p, nil
}
