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

const approvalColumns = "approval_id, campaign_id, show_id, ad_type, duration_secs, script, talking_points, priority, deadline, status, submitted_by, created_at, updated_at"

func scanApproval(row interface{ Scan(...any) error }) (*models.Approval, error) {
	a := &models.Approval{}
	err := row.Scan(&a.ApprovalID, &a.CampaignID, &a.ShowID, &a.AdType, &a.DurationSecs,
		&a.Script, &a.TalkingPoints, &a.Priority, &a.Deadline, &a.Status,
		&a.SubmittedBy, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (sm *salesManager) CreateApproval(ctx context.Context, a *models.Approval) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	if a.ApprovalID == uuid.Nil {
		a.ApprovalID = uuid.New()
	}
	if a.Status == "" {
		a.Status = models.ApprovalStatusPending
	}
	query := `
		INSERT INTO approvals (approval_id, campaign_id, show_id, ad_type, duration_secs, script, talking_points, priority, deadline, status, submitted_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING approval_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		a.ApprovalID, a.CampaignID, a.ShowID, a.AdType, a.DurationSecs,
		a.Script, a.TalkingPoints, a.Priority, a.Deadline, a.Status, a.SubmittedBy).Scan(&id)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidReference.Msg("campaign or show not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert approval")
		return dberror.ErrDatabase.Err(err)
	}
	a.ApprovalID = id
	return nil
}

func (sm *salesManager) GetApproval(ctx context.Context, approvalID uuid.UUID) (*models.Approval, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	a, err := scanApproval(sm.conn().QueryRowContext(ctx,
		`SELECT `+approvalColumns+` FROM approvals WHERE approval_id = $1;`, approvalID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("approval not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve approval")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return a, nil
}

func (sm *salesManager) ListApprovals(ctx context.Context, status string) ([]*models.Approval, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	rows, err := sm.conn().QueryContext(ctx, `
		SELECT `+approvalColumns+`
		FROM approvals
		WHERE ($1 = '' OR status = $1)
		ORDER BY deadline NULLS LAST, created_at;
	`, status)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list approvals")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.Approval
	for rows.Next() {
		a, err := scanApproval(rows)
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

// UpdateApprovalStatus applies the transition guarded by the event's
// from_status and appends the audit event in one transaction. A stale
// from_status means another actor got there first.
func (sm *salesManager) UpdateApprovalStatus(ctx context.Context, approvalID uuid.UUID, event *models.ApprovalEvent) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	tx, err := sm.conn().BeginTx(ctx, nil)
	if err != nil {
		return dberror.ErrDatabase.Err(err)
	}
	defer tx.Rollback()

	var id uuid.UUID
	err = tx.QueryRowContext(ctx, `
		UPDATE approvals SET status = $1, updated_at = now()
		WHERE approval_id = $2 AND status = $3
		RETURNING approval_id;
	`, event.ToStatus, approvalID, event.FromStatus).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			var exists bool
			tx.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM approvals WHERE approval_id = $1);`, approvalID).Scan(&exists)
			if exists {
				return dberror.ErrInvalidTransition.Msg("approval status changed concurrently")
			}
			return dberror.ErrNotFound.Msg("approval not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update approval status")
		return dberror.ErrDatabase.Err(err)
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	event.ApprovalID = approvalID
	_, err = tx.ExecContext(ctx, `
		INSERT INTO approval_events (event_id, approval_id, from_status, to_status, comment, actor_id)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, event.EventID, event.ApprovalID, event.FromStatus, event.ToStatus, event.Comment, event.ActorID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert approval event")
		return dberror.ErrDatabase.Err(err)
	}
	if err := tx.Commit(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to commit approval transition")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (sm *salesManager) ListApprovalEvents(ctx context.Context, approvalID uuid.UUID) ([]*models.ApprovalEvent, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	rows, err := sm.conn().QueryContext(ctx, `
		SELECT event_id, approval_id, from_status, to_status, comment, actor_id, created_at
		FROM approval_events
		WHERE approval_id = $1
		ORDER BY created_at;
	`, approvalID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list approval events")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.ApprovalEvent
	for rows.Next() {
		e := &models.ApprovalEvent{}
		if err := rows.Scan(&e.EventID, &e.ApprovalID, &e.FromStatus, &e.ToStatus, &e.Comment, &e.ActorID, &e.CreatedAt); err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return out, nil
}
