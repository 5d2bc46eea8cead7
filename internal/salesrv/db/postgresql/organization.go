package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/dberror"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

// schemaNamePattern constrains schema names so they can be interpolated into
// CREATE/DROP SCHEMA statements, which cannot take bind parameters.
var schemaNamePattern = regexp.MustCompile(`^org_[a-z][a-z0-9_]{0,59}$`)

// CreateOrganization inserts the org row and creates its dedicated schema in
// one transaction. Migrations into the new schema are applied by the caller.
func (mm *metadataManager) CreateOrganization(ctx context.Context, org *models.Organization) (err apperrors.Error) {
	if !schemaNamePattern.MatchString(org.SchemaName) {
		return dberror.ErrInvalidInput.Msg("invalid organization schema name")
	}
	if org.OrgID == uuid.Nil {
		org.OrgID = uuid.New()
	}
	if org.Plan == "" {
		org.Plan = "standard"
	}
	if org.Status == "" {
		org.Status = models.OrgStatusActive
	}

	tx, errdb := mm.conn().BeginTx(ctx, &sql.TxOptions{})
	if errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to start transaction")
		return dberror.ErrDatabase.Err(errdb)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	query := `
		INSERT INTO organizations (org_id, name, slug, schema_name, plan, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slug) DO NOTHING
		RETURNING org_id;
	`
	var insertedID uuid.UUID
	errdb = tx.QueryRowContext(ctx, query, org.OrgID, org.Name, org.Slug, org.SchemaName, org.Plan, org.Status).Scan(&insertedID)
	if errdb != nil {
		if errdb == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("slug", org.Slug).Msg("organization already exists")
			return dberror.ErrAlreadyExists.Msg("organization already exists")
		}
		if pgErr, ok := errdb.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return dberror.ErrAlreadyExists.Msg("organization already exists")
		}
		log.Ctx(ctx).Error().Err(errdb).Str("slug", org.Slug).Msg("failed to insert organization")
		return dberror.ErrDatabase.Err(errdb)
	}
	org.OrgID = insertedID

	// Schema name is validated above; CREATE SCHEMA cannot be parameterized.
	if _, errdb = tx.ExecContext(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", org.SchemaName)); errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Str("schema", org.SchemaName).Msg("failed to create org schema")
		return dberror.ErrSchemaProvisioning.Err(errdb)
	}

	if errdb = tx.Commit(); errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to commit transaction")
		return dberror.ErrDatabase.Err(errdb)
	}
	return nil
}

const orgColumns = "org_id, name, slug, schema_name, plan, status, created_at, updated_at"

func scanOrganization(row interface{ Scan(...any) error }) (*models.Organization, error) {
	org := &models.Organization{}
	err := row.Scan(&org.OrgID, &org.Name, &org.Slug, &org.SchemaName, &org.Plan, &org.Status, &org.CreatedAt, &org.UpdatedAt)
	return org, err
}

func (mm *metadataManager) GetOrganization(ctx context.Context, orgID uuid.UUID) (*models.Organization, apperrors.Error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE org_id = $1;`
	org, err := scanOrganization(mm.conn().QueryRowContext(ctx, query, orgID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("organization not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve organization")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return org, nil
}

func (mm *metadataManager) GetOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, apperrors.Error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE slug = $1;`
	org, err := scanOrganization(mm.conn().QueryRowContext(ctx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("organization not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve organization")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return org, nil
}

func (mm *metadataManager) ListOrganizations(ctx context.Context) ([]*models.Organization, apperrors.Error) {
	query := `SELECT ` + orgColumns + ` FROM organizations ORDER BY name;`
	rows, err := mm.conn().QueryContext(ctx, query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list organizations")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var orgs []*models.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return orgs, nil
}

func (mm *metadataManager) UpdateOrganizationStatus(ctx context.Context, orgID uuid.UUID, status string) apperrors.Error {
	query := `UPDATE organizations SET status = $1, updated_at = now() WHERE org_id = $2 RETURNING org_id;`
	var id uuid.UUID
	err := mm.conn().QueryRowContext(ctx, query, status, orgID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("organization not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update organization status")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// DeleteOrganization removes the org row and drops its schema. Destructive;
// only the admin CLI calls this.
func (mm *metadataManager) DeleteOrganization(ctx context.Context, orgID uuid.UUID) (err apperrors.Error) {
	org, err := mm.GetOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if !schemaNamePattern.MatchString(org.SchemaName) {
		return dberror.ErrInvalidInput.Msg("invalid organization schema name")
	}

	tx, errdb := mm.conn().BeginTx(ctx, &sql.TxOptions{})
	if errdb != nil {
		return dberror.ErrDatabase.Err(errdb)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, errdb = tx.ExecContext(ctx, `DELETE FROM organizations WHERE org_id = $1`, orgID); errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to delete organization")
		return dberror.ErrDatabase.Err(errdb)
	}
	if _, errdb = tx.ExecContext(ctx, fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", org.SchemaName)); errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Str("schema", org.SchemaName).Msg("failed to drop org schema")
		return dberror.ErrSchemaProvisioning.Err(errdb)
	}
	if errdb = tx.Commit(); errdb != nil {
		return dberror.ErrDatabase.Err(errdb)
	}
	return nil
}
