package apis

import (
	"net/http"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salesmanager"
)

// Agencies

func createAgency(r *http.Request) (*httpx.Response, error) {
	var req salesmanager.AgencyRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	a, err := salesmanager.CreateAgency(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return createdResponse(a, "/v1/agencies/"+a.AgencyID.String()), nil
}

func getAgency(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "agencyID")
	if err != nil {
		return nil, err
	}
	a, aerr := db.DB(r.Context()).GetAgency(r.Context(), id)
	if aerr != nil {
		return nil, aerr
	}
	return okResponse(a), nil
}

func listAgencies(r *http.Request) (*httpx.Response, error) {
	agencies, err := db.DB(r.Context()).ListAgencies(r.Context())
	if err != nil {
		return nil, err
	}
	return okResponse(agencies), nil
}

func updateAgency(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "agencyID")
	if err != nil {
		return nil, err
	}
	var req salesmanager.AgencyRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	a, aerr := salesmanager.UpdateAgency(r.Context(), id, &req)
	if aerr != nil {
		return nil, aerr
	}
	return okResponse(a), nil
}

func deleteAgency(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "agencyID")
	if err != nil {
		return nil, err
	}
	if err := db.DB(r.Context()).DeleteAgency(r.Context(), id); err != nil {
		return nil, err
	}
	return noContentResponse(), nil
}

// Advertisers

func createAdvertiser(r *http.Request) (*httpx.Response, error) {
	var req salesmanager.AdvertiserRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	a, err := salesmanager.CreateAdvertiser(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return createdResponse(a, "/v1/advertisers/"+a.AdvertiserID.String()), nil
}

func getAdvertiser(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "advertiserID")
	if err != nil {
		return nil, err
	}
	a, aerr := db.DB(r.Context()).GetAdvertiser(r.Context(), id)
	if aerr != nil {
		return nil, aerr
	}
	return okResponse(a), nil
}

func listAdvertisers(r *http.Request) (*httpx.Response, error) {
	advs, err := db.DB(r.Context()).ListAdvertisers(r.Context())
	if err != nil {
		return nil, err
	}
	return okResponse(advs), nil
}

func updateAdvertiser(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "advertiserID")
	if err != nil {
		return nil, err
	}
	var req salesmanager.AdvertiserRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	a, aerr := salesmanager.UpdateAdvertiser(r.Context(), id, &req)
	if aerr != nil {
		return nil, aerr
	}
	return okResponse(a), nil
}

func deleteAdvertiser(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "advertiserID")
	if err != nil {
		return nil, err
	}
	if err := db.DB(r.Context()).DeleteAdvertiser(r.Context(), id); err != nil {
		return nil, err
	}
	return noContentResponse(), nil
}

// Shows

func createShow(r *http.Request) (*httpx.Response, error) {
	var req salesmanager.ShowRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	s, err := salesmanager.CreateShow(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return createdResponse(s, "/v1/shows/"+s.ShowID.String()), nil
}

func getShow(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "showID")
	if err != nil {
		return nil, err
	}
	s, serr := db.DB(r.Context()).GetShow(r.Context(), id)
	if serr != nil {
		return nil, serr
	}
	return okResponse(s), nil
}

func listShows(r *http.Request) (*httpx.Response, error) {
	shows, err := db.DB(r.Context()).ListShows(r.Context())
	if err != nil {
		return nil, err
	}
	return okResponse(shows), nil
}

func updateShow(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "showID")
	if err != nil {
		return nil, err
	}
	var req salesmanager.ShowRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	s, serr := salesmanager.UpdateShow(r.Context(), id, &req)
	if serr != nil {
		return nil, serr
	}
	return okResponse(s), nil
}

func deleteShow(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "showID")
	if err != nil {
		return nil, err
	}
	if err := db.DB(r.Context()).DeleteShow(r.Context(), id); err != nil {
		return nil, err
	}
	return noContentResponse(), nil
}

// Episodes

func createEpisode(r *http.Request) (*httpx.Response, error) {
	var req salesmanager.EpisodeRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	ep, err := salesmanager.CreateEpisode(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return createdResponse(ep, "/v1/episodes/"+ep.EpisodeID.String()), nil
}

func getEpisode(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "episodeID")
	if err != nil {
		return nil, err
	}
	ep, eerr := db.DB(r.Context()).GetEpisode(r.Context(), id)
	if eerr != nil {
		return nil, eerr
	}
	return okResponse(ep), nil
}

func listShowEpisodes(r *http.Request) (*httpx.Response, error) {
	showID, err := pathUUID(r, "showID")
	if err != nil {
		return nil, err
	}
	eps, eerr := db.DB(r.Context()).ListEpisodesByShow(r.Context(), showID)
	if eerr != nil {
		return nil, eerr
	}
	return okResponse(eps), nil
}

func updateEpisode(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "episodeID")
	if err != nil {
		return nil, err
	}
	var req salesmanager.EpisodeRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	ep, eerr := salesmanager.UpdateEpisode(r.Context(), id, &req)
	if eerr != nil {
		return nil, eerr
	}
	return okResponse(ep), nil
}

func deleteEpisode(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "episodeID")
	if err != nil {
		return nil, err
	}
	if err := db.DB(r.Context()).DeleteEpisode(r.Context(), id); err != nil {
		return nil, err
	}
	return noContentResponse(), nil
}
