package apis

import (
	"net/http"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/assets"
)

func registerAsset(r *http.Request) (*httpx.Response, error) {
	var req assets.RegisterRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	grant, err := assets.RegisterAsset(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return createdResponse(grant, "/v1/assets/"+grant.Asset.AssetID.String()), nil
}

func confirmAssetUpload(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "assetID")
	if err != nil {
		return nil, err
	}
	a, aerr := assets.ConfirmUpload(r.Context(), id)
	if aerr != nil {
		return nil, aerr
	}
	return okResponse(a), nil
}

func getAssetDownloadURL(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "assetID")
	if err != nil {
		return nil, err
	}
	grant, aerr := assets.GetDownloadURL(r.Context(), id)
	if aerr != nil {
		return nil, aerr
	}
	return okResponse(grant), nil
}

func listCampaignAssets(r *http.Request) (*httpx.Response, error) {
	campaignID, err := pathUUID(r, "campaignID")
	if err != nil {
		return nil, err
	}
	list, aerr := assets.ListAssets(r.Context(), campaignID)
	if aerr != nil {
		return nil, aerr
	}
	return okResponse(list), nil
}

func archiveAsset(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "assetID")
	if err != nil {
		return nil, err
	}
	a, aerr := assets.ArchiveAsset(r.Context(), id)
	if aerr != nil {
		return nil, aerr
	}
	return okResponse(a), nil
}
