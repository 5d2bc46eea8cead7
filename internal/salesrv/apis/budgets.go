package apis

import (
	"net/http"
	"time"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salesmanager"
)

func upsertBudgetEntry(r *http.Request) (*httpx.Response, error) {
	var req salesmanager.BudgetEntryRequest
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	entry, err := salesmanager.UpsertBudgetEntry(r.Context(), &req)
	if err != nil {
		return nil, err
	}
	return okResponse(entry), nil
}

func bulkUpsertBudgetEntries(r *http.Request) (*httpx.Response, error) {
	var reqs []*salesmanager.BudgetEntryRequest
	if err := httpx.GetRequestData(r, &reqs); err != nil {
		return nil, err
	}
	entries, err := salesmanager.BulkUpsertBudgetEntries(r.Context(), reqs)
	if err != nil {
		return nil, err
	}
	return okResponse(entries), nil
}

func listBudgetEntries(r *http.Request) (*httpx.Response, error) {
	year, err := queryInt(r, "year", time.Now().Year())
	if err != nil {
		return nil, err
	}
	month, err := queryInt(r, "month", 0)
	if err != nil {
		return nil, err
	}
	entries, berr := salesmanager.ListBudgetEntries(r.Context(), year, month)
	if berr != nil {
		return nil, berr
	}
	return okResponse(entries), nil
}

func deleteBudgetEntry(r *http.Request) (*httpx.Response, error) {
	id, err := pathUUID(r, "entryID")
	if err != nil {
		return nil, err
	}
	if err := salesmanager.DeleteBudgetEntry(r.Context(), id); err != nil {
		return nil, err
	}
	return noContentResponse(), nil
}

func getBudgetRollup(r *http.Request) (*httpx.Response, error) {
	year, err := queryInt(r, "year", time.Now().Year())
	if err != nil {
		return nil, err
	}
	month, err := queryInt(r, "month", 0)
	if err != nil {
		return nil, err
	}
	rollup, rerr := salesmanager.GetBudgetRollup(r.Context(), year, month)
	if rerr != nil {
		return nil, rerr
	}
	return okResponse(rollup), nil
}
