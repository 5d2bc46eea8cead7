package apis

import (
	"net/http"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/orgmanager"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

// Organization administration. The router gates these behind the admin role.

func createOrganization(r *http.Request) (*httpx.Response, error) {
	var req orgmanager.OrganizationRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	org, err := orgmanager.CreateOrganization(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return createdResponse(org, "/v1/orgs/"+org.OrgID.String()), nil
}

func getOrganization(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "orgID")
	if err != nil {
		return nil, err
	}
	org, oerr := orgmanager.GetOrganization(r.Context(), id)
	if oerr != nil {
		return nil, oerr
	}
	return okResponse(org), nil
}

func listOrganizations(r *http.Request) (*httpx.Response, error) {
	orgs, err := orgmanager.ListOrganizations(r.Context())
	if err != nil {
		return nil, err
	}
	return okResponse(orgs), nil
}

func updateOrganizationStatus(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "orgID")
	if err != nil {
		return nil, err
	}
	var req statusUpdateRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	org, oerr := orgmanager.UpdateOrganizationStatus(r.Context(), id, req.Status)
	if oerr != nil {
		return nil, oerr
	}
	return okResponse(org), nil
}

func deleteOrganization(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "orgID")
	if err != nil {
		return nil, err
	}
	if err := orgmanager.DeleteOrganization(r.Context(), id); err != nil {
		return nil, err
	}
	return noContentResponse(), nil
}

// User administration, scoped to the caller's organization.

func createUser(r *http.Request) (*httpx.Response, error) {
	var req orgmanager.UserRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	user, err := orgmanager.CreateUser(r.Context(), salescommon.GetOrgID(r.Context()), &req)
	if err != nil {
		return nil, err
	}
	return createdResponse(user, "/v1/users/"+user.UserID.String()), nil
}

func getUser(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "userID")
	if err != nil {
		return nil, err
	}
	user, uerr := orgmanager.GetUser(r.Context(), id)
	if uerr != nil {
		return nil, uerr
	}
	if user.OrgID != salescommon.GetOrgID(r.Context()) {
		return nil, httpx.ErrNotFound("user not found")
	}
	return okResponse(user), nil
}

func listUsers(r *http.Request) (*httpx.Response, error) {
	users, err := orgmanager.ListUsers(r.Context(), salescommon.GetOrgID(r.Context()))
	if err != nil {
		return nil, err
	}
	return okResponse(users), nil
}

func updateUser(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "userID")
	if err != nil {
		return nil, err
	}
	existing, uerr := orgmanager.GetUser(r.Context(), id)
	if uerr != nil {
		return nil, uerr
	}
	if existing.OrgID != salescommon.GetOrgID(r.Context()) {
		return nil, httpx.ErrNotFound("user not found")
	}
	var req orgmanager.UserRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	user, uerr := orgmanager.UpdateUser(r.Context(), id, &req)
	if uerr != nil {
		return nil, uerr
	}
	return okResponse(user), nil
}

func deleteUser(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "userID")
	if err != nil {
		return nil, err
	}
	existing, uerr := orgmanager.GetUser(r.Context(), id)
	if uerr != nil {
		return nil, uerr
	}
	if existing.OrgID != salescommon.GetOrgID(r.Context()) {
		return nil, httpx.ErrNotFound("user not found")
	}
	if err := orgmanager.DeleteUser(r.Context(), id); err != nil {
		return nil, err
	}
	return noContentResponse(), nil
}
