package apis

import (
	"net/http"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salesmanager"
)

func upsertKPI(r *http.Request) (*httpx.Response, error) {
	var req salesmanager.KPIRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	kpi, err := salesmanager.UpsertKPI(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return okResponse(kpi), nil
}

func getCampaignKPI(r *http.Request) (*httpx.Response, error) {
	campaignID, err := pathUUID(r, "campaignID")
	if err != nil {
		return nil, err
	}
	kpi, kerr := db.DB(r.Context()).GetKPIByCampaign(r.Context(), campaignID)
	if kerr != nil {
		return nil, kerr
	}
	return okResponse(kpi), nil
}

func updateKPIActuals(r *http.Request) (*httpx.Response, error) {
	campaignID, err := pathUUID(r, "campaignID")
	if err != nil {
		return nil, err
	}
	var req salesmanager.KPIActualsRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	kpi, kerr := salesmanager.UpdateKPIActuals(r.Context(), campaignID, &req)
	if kerr != nil {
		return nil, kerr
	}
	return okResponse(kpi), nil
}

func getKPIReport(r *http.Request) (*httpx.Response, error) {
	campaignID, err := pathUUID(r, "campaignID")
	if err != nil {
		return nil, err
	}
	report, kerr := salesmanager.GetKPIReport(r.Context(), campaignID)
	if kerr != nil {
		return nil, kerr
	}
	return okResponse(report), nil
}
