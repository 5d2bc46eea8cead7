// Package orgmanager provisions organizations and their users. Creating an
// organization also creates its dedicated schema and applies the org-schema
// migrations.
package orgmanager

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/schemavalidator"
)

var (
	ErrOrgManager apperrors.Error = apperrors.New("organization error").SetStatusCode(http.StatusInternalServerError)

	ErrInvalidRequest = ErrOrgManager.New("invalid request").SetStatusCode(http.StatusBadRequest)
	ErrProvisioning   = ErrOrgManager.New("unable to provision organization schema")
)

func validateStruct(s any) apperrors.Error {
	if err := schemavalidator.V().Struct(s); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return ErrInvalidRequest.Msg("invalid value for " + schemavalidator.GetJSONFieldPath(ve[0]))
		}
		return ErrInvalidRequest.Err(err)
	}
	return nil
}

// OrganizationRequest is the payload to create an organization.
type OrganizationRequest struct {
	Name string `json:"name" validate:"required,max=128"`
	Slug string `json:"slug" validate:"required,max=64,lowercase,excludesall= "`
	Plan string `json:"plan" validate:"omitempty,oneof=standard pro enterprise"`
}

// SchemaNameForSlug derives the per-org schema name from the slug. Slugs are
// unique, so the derived name is too.
func SchemaNameForSlug(slug string) string {
	return "org_" + strings.ReplaceAll(slug, "-", "_")
}

// CreateOrganization records the organization, creates its schema and runs
// the org-schema migrations. If migration fails the record is removed so the
// slug stays available.
func CreateOrganization(ctx context.Context, req *OrganizationRequest) (*models.Organization, apperrors.Error) {
	if req == nil {
		return nil, ErrInvalidRequest.Msg("missing request body")
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	plan := req.Plan
	if plan == "" {
		plan = "standard"
	}
	org := &models.Organization{
		OrgID:      uuid.New(),
		Name:       req.Name,
		Slug:       req.Slug,
		SchemaName: SchemaNameForSlug(req.Slug),
		Plan:       plan,
		Status:     models.OrgStatusActive,
	}
	if err := db.DB(ctx).CreateOrganization(ctx, org); err != nil {
		return nil, err
	}
	if err := db.MigrateOrgSchema(org.SchemaName); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("schema", org.SchemaName).Msg("org schema migration failed")
		if derr := db.DB(ctx).DeleteOrganization(ctx, org.OrgID); derr != nil {
			log.Ctx(ctx).Error().Err(derr).Msg("unable to roll back organization record")
		}
		return nil, ErrProvisioning.Err(err)
	}
	log.Ctx(ctx).Info().Str("org_id", org.OrgID.String()).Str("slug", org.Slug).Msg("created organization")
	return org, nil
}

func GetOrganization(ctx context.Context, orgID uuid.UUID) (*models.Organization, apperrors.Error) {
	return db.DB(ctx).GetOrganization(ctx, orgID)
}

func ListOrganizations(ctx context.Context) ([]*models.Organization, apperrors.Error) {
	return db.DB(ctx).ListOrganizations(ctx)
}

// UpdateOrganizationStatus activates or deactivates an organization.
// Deactivated orgs reject logins and session validation.
func UpdateOrganizationStatus(ctx context.Context, orgID uuid.UUID, status string) (*models.Organization, apperrors.Error) {
	if status != models.OrgStatusActive && status != models.OrgStatusInactive {
		return nil, ErrInvalidRequest.Msg("status must be active or inactive")
	}
	if err := db.DB(ctx).UpdateOrganizationStatus(ctx, orgID, status); err != nil {
		return nil, err
	}
	return db.DB(ctx).GetOrganization(ctx, orgID)
}

// DeleteOrganization removes the organization record. The org schema is left
// in place for offline archival.
func DeleteOrganization(ctx context.Context, orgID uuid.UUID) apperrors.Error {
	return db.DB(ctx).DeleteOrganization(ctx, orgID)
}
