package apis

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salesmanager"
)

func createProposal(r *http.Request) (*httpx.Response, error) {
	var req salesmanager.ProposalRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	p, err := salesmanager.CreateProposal(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return createdResponse(p, "/v1/proposals/"+p.ProposalID.String()), nil
}

func getProposal(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "proposalID")
	if err != nil {
		return nil, err
	}
	p, perr := salesmanager.GetProposal(r.Context(), id)
	if perr != nil {
		return nil, perr
	}
	return okResponse(p), nil
}

func listProposals(r *http.Request) (*httpx.Response, error) {
	status := r.URL.Query().Get("status")
	proposals, err := salesmanager.ListProposals(r.Context(), status)
	if err != nil {
		return nil, err
	}
	return okResponse(proposals), nil
}

func updateProposal(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "proposalID")
	if err != nil {
		return nil, err
	}
	var req salesmanager.ProposalRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	p, perr := salesmanager.UpdateProposal(r.Context(), id, &req)
	if perr != nil {
		return nil, perr
	}
	return okResponse(p), nil
}

func listProposalVersions(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "proposalID")
	if err != nil {
		return nil, err
	}
	versions, verr := salesmanager.ListProposalVersions(r.Context(), id)
	if verr != nil {
		return nil, verr
	}
	return okResponse(versions), nil
}

func versionNumParam(r *http.Request) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, "versionNum"))
	if err != nil || n < 1 {
		return 0, httpx.ErrInvalidRequest("invalid version number")
	}
	return n, nil
}

func getProposalVersion(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "proposalID")
	if err != nil {
		return nil, err
	}
	n, err := versionNumParam(r)
	if err != nil {
		return nil, err
	}
	v, verr := salesmanager.GetProposalVersion(r.Context(), id, n)
	if verr != nil {
		return nil, verr
	}
	return okResponse(v), nil
}

// restoreProposalVersion copies an older snapshot forward as a new version.
// Sales and admin only.
func restoreProposalVersion(r *http.Request) (*httpx.Response, error) {
	if err := requireRole(r, salescommon.RoleSales); err != nil {
		return nil, err
	}
	id, err := pathUUID(r, "proposalID")
	if err != nil {
		return nil, err
	}
	n, err := versionNumParam(r)
	if err != nil {
		return nil, err
	}
	p, perr := salesmanager.RestoreProposalVersion(r.Context(), id, n)
	if perr != nil {
		return nil, perr
	}
	return okResponse(p), nil
}
