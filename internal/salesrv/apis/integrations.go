package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/integrations"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

func listIntegrationProviders(r *http.Request) (*httpx.Response, error) {
	return okResponse(integrations.ListProviders()), nil
}

func configureIntegration(r *http.Request) (*httpx.Response, error) {
	if err := requireRole(r); err != nil {
		return nil, err
	}
	var req integrations.IntegrationRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	in, err := integrations.ConfigureIntegration(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return okResponse(in), nil
}

func getIntegration(r *http.Request) (*httpx.Response, error) {
	provider := chi.URLParam(r, "provider")
	in, err := integrations.GetIntegration(r.Context(), provider)
	if err != nil {
		return nil, err
	}
	return okResponse(in), nil
}

func listIntegrations(r *http.Request) (*httpx.Response, error) {
	ins, err := integrations.ListIntegrations(r.Context())
	if err != nil {
		return nil, err
	}
	return okResponse(ins), nil
}

func runIntegrationSync(r *http.Request) (*httpx.Response, error) {
	if err := requireRole(r, salescommon.RoleProducer); err != nil {
		return nil, err
	}
	provider := chi.URLParam(r, "provider")
	result, err := integrations.RunSync(r.Context(), provider)
	if err != nil {
		return nil, err
	}
	return okResponse(result), nil
}
