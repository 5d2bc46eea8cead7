package apis

import (
	"net/http"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salesmanager"
)

func createSlot(r *http.Request) (*httpx.Response, error) {
	var req salesmanager.SlotRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	slot, err := salesmanager.CreateScheduleSlot(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return createdResponse(slot, "/v1/slots/"+slot.SlotID.String()), nil
}

func getSlot(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "slotID")
	if err != nil {
		return nil, err
	}
	slot, serr := salesmanager.GetScheduleSlot(r.Context(), id)
	if serr != nil {
		return nil, serr
	}
	return okResponse(slot), nil
}

func listCampaignSlots(r *http.Request) (*httpx.Response, error) {
	campaignID, err := pathUUID(r, "campaignID")
	if err != nil {
		return nil, err
	}
	slots, serr := salesmanager.ListSlotsByCampaign(r.Context(), campaignID)
	if serr != nil {
		return nil, serr
	}
	return okResponse(slots), nil
}

func updateSlot(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "slotID")
	if err != nil {
		return nil, err
	}
	var req salesmanager.SlotRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	slot, serr := salesmanager.UpdateScheduleSlot(r.Context(), id, &req)
	if serr != nil {
		return nil, serr
	}
	return okResponse(slot), nil
}

func markSlotAired(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "slotID")
	if err != nil {
		return nil, err
	}
	slot, serr := salesmanager.MarkSlotAired(r.Context(), id)
	if serr != nil {
		return nil, serr
	}
	return okResponse(slot), nil
}

func deleteSlot(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "slotID")
	if err != nil {
		return nil, err
	}
	if err := salesmanager.DeleteScheduleSlot(r.Context(), id); err != nil {
		return nil, err
	}
	return noContentResponse(), nil
}
