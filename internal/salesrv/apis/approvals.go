package apis

import (
	"net/http"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salesmanager"
)

func submitApproval(r *http.Request) (*httpx.Response, error) {
	var req salesmanager.ApprovalRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	a, err := salesmanager.SubmitApproval(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return createdResponse(a, "/v1/approvals/"+a.ApprovalID.String()), nil
}

func getApproval(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "approvalID")
	if err != nil {
		return nil, err
	}
	a, aerr := salesmanager.GetApproval(r.Context(), id)
	if aerr != nil {
		return nil, aerr
	}
	return okResponse(a), nil
}

func listApprovals(r *http.Request) (*httpx.Response, error) {
	status := r.URL.Query().Get("status")
	approvals, err := salesmanager.ListApprovals(r.Context(), status)
	if err != nil {
		return nil, err
	}
	return okResponse(approvals), nil
}

func listApprovalEvents(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "approvalID")
	if err != nil {
		return nil, err
	}
	events, eerr := salesmanager.ListApprovalEvents(r.Context(), id)
	if eerr != nil {
		return nil, eerr
	}
	return okResponse(events), nil
}

type approvalTransitionRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// transitionApproval moves an approval through its workflow. Approving and
// rejecting are producer decisions; resubmission is open to sales too.
func transitionApproval(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "approvalID")
	if err != nil {
		return nil, err
	}
	var req approvalTransitionRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	if req.Status == models.ApprovalStatusPending {
		if err := requireRole(r, salescommon.RoleProducer, salescommon.RoleSales); err != nil {
			return nil, err
		}
	} else if err := requireRole(r, salescommon.RoleProducer); err != nil {
		return nil, err
	}
	a, aerr := salesmanager.TransitionApproval(r.Context(), id, req.Status, req.Comment)
	if aerr != nil {
		return nil, aerr
	}
	return okResponse(a), nil
}
