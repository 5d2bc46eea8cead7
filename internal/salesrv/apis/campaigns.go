package apis

import (
	"net/http"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salesmanager"
)

func createCampaign(r *http.Request) (*httpx.Response, error) {
	var req salesmanager.CampaignRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	c, err := salesmanager.CreateCampaign(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return createdResponse(c, "/v1/campaigns/"+c.CampaignID.String()), nil
}

func getCampaign(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "campaignID")
	if err != nil {
		return nil, err
	}
	c, cerr := salesmanager.GetCampaign(r.Context(), id)
	if cerr != nil {
		return nil, cerr
	}
	return okResponse(c), nil
}

func listCampaigns(r *http.Request) (*httpx.Response, error) {
	advertiserID, err := queryUUID(r, "advertiser_id")
	if err != nil {
		return nil, err
	}
	status := r.URL.Query().Get("status")
	campaigns, cerr := salesmanager.ListCampaigns(r.Context(), status, advertiserID)
	if cerr != nil {
		return nil, cerr
	}
	return okResponse(campaigns), nil
}

func updateCampaign(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "campaignID")
	if err != nil {
		return nil, err
	}
	var req salesmanager.CampaignRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	c, cerr := salesmanager.UpdateCampaign(r.Context(), id, &req)
	if cerr != nil {
		return nil, cerr
	}
	return okResponse(c), nil
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func updateCampaignStatus(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "campaignID")
	if err != nil {
		return nil, err
	}
	var req statusUpdateRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	c, cerr := salesmanager.UpdateCampaignStatus(r.Context(), id, req.Status)
	if cerr != nil {
		return nil, cerr
	}
	return okResponse(c), nil
}

func deleteCampaign(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "campaignID")
	if err != nil {
		return nil, err
	}
	if err := salesmanager.DeleteCampaign(r.Context(), id); err != nil {
		return nil, err
	}
	return noContentResponse(), nil
}

func getCampaignSummary(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "campaignID")
	if err != nil {
		return nil, err
	}
	summary, serr := salesmanager.GetCampaignSummary(r.Context(), id)
	if serr != nil {
		return nil, serr
	}
	return okResponse(summary), nil
}
