package apis

import (
	"net/http"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salesmanager"
)

func createShipment(r *http.Request) (*httpx.Response, error) {
	var req salesmanager.ShipmentRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	s, err := salesmanager.CreateShipment(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return createdResponse(s, "/v1/shipments/"+s.ShipmentID.String()), nil
}

func getShipment(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "shipmentID")
	if err != nil {
		return nil, err
	}
	s, serr := salesmanager.GetShipment(r.Context(), id)
	if serr != nil {
		return nil, serr
	}
	return okResponse(s), nil
}

func listShipments(r *http.Request) (*httpx.Response, error) {
	campaignID, err := queryUUID(r, "campaign_id")
	if err != nil {
		return nil, err
	}
	shipments, serr := salesmanager.ListShipments(r.Context(), campaignID)
	if serr != nil {
		return nil, serr
	}
	return okResponse(shipments), nil
}

func updateShipment(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "shipmentID")
	if err != nil {
		return nil, err
	}
	var req salesmanager.ShipmentRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	s, serr := salesmanager.UpdateShipment(r.Context(), id, &req)
	if serr != nil {
		return nil, serr
	}
	return okResponse(s), nil
}

func updateShipmentStatus(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "shipmentID")
	if err != nil {
		return nil, err
	}
	var req statusUpdateRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	s, serr := salesmanager.UpdateShipmentStatus(r.Context(), id, req.Status)
	if serr != nil {
		return nil, serr
	}
	return okResponse(s), nil
}

func deleteShipment(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "shipmentID")
	if err != nil {
		return nil, err
	}
	if err := salesmanager.DeleteShipment(r.Context(), id); err != nil {
		return nil, err
	}
	return noContentResponse(), nil
}
