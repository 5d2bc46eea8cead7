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

const proposalColumns = "proposal_id, advertiser_id, title, status, body, current_version, created_by, created_at, updated_at"

func scanProposal(row interface{ Scan(...any) error }) (*models.Proposal, error) {
	p := &models.Proposal{}
	err := row.Scan(&p.ProposalID, &p.AdvertiserID, &p.Title, &p.Status, &p.Body,
		&p.CurrentVersion, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const versionColumns = "version_id, proposal_id, version_num, title, status, body, change_note, created_by, created_at"

func scanProposalVersion(row interface{ Scan(...any) error }) (*models.ProposalVersion, error) {
	v := &models.ProposalVersion{}
	err := row.Scan(&v.VersionID, &v.ProposalID, &v.VersionNum, &v.Title, &v.Status,
		&v.Body, &v.ChangeNote, &v.CreatedBy, &v.CreatedAt)
	return v, err
}

func appendVersionTx(ctx context.Context, tx *sql.Tx, p *models.Proposal, versionNum int, changeNote string, author uuid.UUID) apperrors.Error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO proposal_versions (version_id, proposal_id, version_num, title, status, body, change_note, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, uuid.New(), p.ProposalID, versionNum, p.Title, p.Status, p.Body, changeNote, author)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return dberror.ErrAlreadyExists.Msg("proposal version already exists")
		}
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// CreateProposal writes the proposal at version 1 together with its first
// version row.
func (sm *salesManager) CreateProposal(ctx context.Context, p *models.Proposal, changeNote string) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	if p.ProposalID == uuid.Nil {
		p.ProposalID = uuid.New()
	}
	if p.Status == "" {
		p.Status = models.ProposalStatusDraft
	}
	p.CurrentVersion = 1

	tx, err := sm.conn().BeginTx(ctx, nil)
	if err != nil {
		return dberror.ErrDatabase.Err(err)
	}
	defer tx.Rollback()

	var id uuid.UUID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO proposals (proposal_id, advertiser_id, title, status, body, current_version, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING proposal_id;
	`, p.ProposalID, p.AdvertiserID, p.Title, p.Status, p.Body, p.CurrentVersion, p.CreatedBy).Scan(&id)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidReference.Msg("advertiser not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert proposal")
		return dberror.ErrDatabase.Err(err)
	}
	if dbErr := appendVersionTx(ctx, tx, p, 1, changeNote, p.CreatedBy); dbErr != nil {
		log.Ctx(ctx).Error().Err(dbErr).Msg("failed to insert proposal version")
		return dbErr
	}
	if err := tx.Commit(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to commit proposal")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (sm *salesManager) GetProposal(ctx context.Context, proposalID uuid.UUID) (*models.Proposal, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	p, err := scanProposal(sm.conn().QueryRowContext(ctx,
		`SELECT `+proposalColumns+` FROM proposals WHERE proposal_id = $1;`, proposalID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("proposal not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve proposal")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return p, nil
}

// UpdateProposalWithVersion bumps current_version and appends the new
// version row in one transaction. The version number is read back under the
// row lock so concurrent writers serialize.
func (sm *salesManager) UpdateProposalWithVersion(ctx context.Context, p *models.Proposal, changeNote string, author uuid.UUID) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	tx, err := sm.conn().BeginTx(ctx, nil)
	if err != nil {
		return dberror.ErrDatabase.Err(err)
	}
	defer tx.Rollback()

	var nextVersion int
	err = tx.QueryRowContext(ctx, `
		UPDATE proposals
		SET title = $1, status = $2, body = $3, current_version = current_version + 1, updated_at = now()
		WHERE proposal_id = $4
		RETURNING current_version;
	`, p.Title, p.Status, p.Body, p.ProposalID).Scan(&nextVersion)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("proposal not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update proposal")
		return dberror.ErrDatabase.Err(err)
	}
	if dbErr := appendVersionTx(ctx, tx, p, nextVersion, changeNote, author); dbErr != nil {
		log.Ctx(ctx).Error().Err(dbErr).Msg("failed to append proposal version")
		return dbErr
	}
	if err := tx.Commit(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to commit proposal update")
		return dberror.ErrDatabase.Err(err)
	}
	p.CurrentVersion = nextVersion
	return nil
}

func (sm *salesManager) ListProposals(ctx context.Context, status string) ([]*models.Proposal, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	rows, err := sm.conn().QueryContext(ctx, `
		SELECT `+proposalColumns+`
		FROM proposals
		WHERE ($1 = '' OR status = $1)
		ORDER BY updated_at DESC;
	`, status)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list proposals")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return out, nil
}

func (sm *salesManager) ListProposalVersions(ctx context.Context, proposalID uuid.UUID) ([]*models.ProposalVersion, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	rows, err := sm.conn().QueryContext(ctx, `
		SELECT `+versionColumns+`
		FROM proposal_versions
		WHERE proposal_id = $1
		ORDER BY version_num DESC;
	`, proposalID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list proposal versions")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.ProposalVersion
	for rows.Next() {
		v, err := scanProposalVersion(rows)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return out, nil
}

func (sm *salesManager) GetProposalVersion(ctx context.Context, proposalID uuid.UUID, versionNum int) (*models.ProposalVersion, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	v, err := scanProposalVersion(sm.conn().QueryRowContext(ctx,
		`SELECT `+versionColumns+` FROM proposal_versions WHERE proposal_id = $1 AND version_num = $2;`,
		proposalID, versionNum))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("proposal version not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve proposal version")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return v, nil
}
