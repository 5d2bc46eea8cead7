package auth

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/config"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/schemavalidator"
)

type loginRequest struct {
	OrgSlug  string `json:"org_slug"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
	OrgID     string    `json:"org_id"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
}

// login verifies the user's credentials within their organization and
// returns a signed session token.
func login(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	req := &loginRequest{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, err
	}
	if err := schemavalidator.V().Struct(req); err != nil {
		return nil, httpx.ErrInvalidRequest("invalid login request")
	}

	slug := req.OrgSlug
	if slug == "" {
		if !config.Config().SingleOrgMode {
			return nil, httpx.ErrInvalidRequest("org_slug is required")
		}
		slug = config.Config().DefaultOrgSlug
	}

	org, err := db.DB(ctx).GetOrganizationBySlug(ctx, slug)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if org.Status != models.OrgStatusActive {
		return nil, ErrInvalidCredentials
	}

	user, err := db.DB(ctx).GetUserByEmail(ctx, org.OrgID, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrDisabledUser
	}
	if !salescommon.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, tokenErr := CreateSessionToken(ctx, user)
	if tokenErr != nil {
		return nil, tokenErr
	}

	log.Ctx(ctx).Info().Str("email", user.Email).Str("org", slug).Msg("user logged in")

	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &loginResponse{
			Token:     token,
			ExpiresAt: expiresAt,
			UserID:    user.UserID.String(),
			OrgID:     user.OrgID.String(),
			Role:      string(user.Role),
			FullName:  user.FullName,
		},
	}, nil
}

type sessionResponse struct {
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// getSession echoes the authenticated caller's identity.
func getSession(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	user := salescommon.GetUserContext(ctx)
	if user == nil {
		return nil, ErrMissingToken
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &sessionResponse{
			UserID: user.UserID.String(),
			OrgID:  salescommon.GetOrgID(ctx).String(),
			Email:  user.Email,
			Role:   string(user.Role),
		},
	}, nil
}

// logout acknowledges session disposal. Tokens are not server-side
// revocable yet; see isTokenRevoked.
func logout(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	if user := salescommon.GetUserContext(ctx); user != nil {
		log.Ctx(ctx).Info().Str("email", user.Email).Msg("user logged out")
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   map[string]string{"status": "logged_out"},
	}, nil
}
