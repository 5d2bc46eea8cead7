package apis

import (
	"net/http"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

// requireRole rejects the request unless the caller holds one of the given
// roles. Admin passes everything.
func requireRole(r *http.Request, roles ...salescommon.Role) error {
	role := salescommon.GetUserRole(r.Context())
	if role == salescommon.RoleAdmin {
		return nil
	}
	for _, want := range roles {
		if role == want {
			return nil
		}
	}
	return httpx.ErrForbidden("operation requires elevated role")
}
