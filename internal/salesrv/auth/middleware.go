package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

// UserSessionMiddleware authenticates the request's bearer token, loads the
// caller's organization and pins the request's database connection to the
// org's schema. Every org-scoped query downstream runs inside that schema.
func UserSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			httpx.ErrUnAuthorized("missing session token").Send(w)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := ParseSessionToken(ctx, tokenString)
		if err != nil {
			httpx.ErrUnAuthorized(err.Error()).Send(w)
			return
		}

		org, err := db.DB(ctx).GetOrganization(ctx, claims.OrgID)
		if err != nil {
			httpx.ErrInvalidOrganization().Send(w)
			return
		}
		if org.Status != models.OrgStatusActive {
			httpx.ErrInvalidOrganization().Send(w)
			return
		}

		user, err := db.DB(ctx).GetUser(ctx, claims.UserID)
		if err != nil || !user.IsActive {
			httpx.ErrInvalidUser().Send(w)
			return
		}

		ctx = salescommon.SetOrgIdInContext(ctx, org.OrgID)
		ctx = salescommon.SetOrgSchemaInContext(ctx, org.SchemaName)
		ctx = salescommon.SetUserContext(ctx, &salescommon.UserContext{
			UserID: user.UserID,
			Email:  user.Email,
			Role:   user.Role,
		})

		scopes := map[string]string{
			db.ScopeSearchPath: org.SchemaName,
			db.ScopeOrgId:      org.OrgID.String(),
		}
		if scopeErr := db.DB(ctx).AddScopes(ctx, scopes); scopeErr != nil {
			log.Ctx(ctx).Error().Err(scopeErr).Msg("failed to scope connection to org schema")
			httpx.ErrApplicationError("unable to scope request").Send(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects callers whose role is not in the allowed set. Admin
// passes every check.
func RequireRole(roles ...salescommon.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := salescommon.GetUserRole(r.Context())
			if role == salescommon.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpx.ErrForbidden("insufficient role").Send(w)
		})
	}
}
