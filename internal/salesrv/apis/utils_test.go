package apis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithParam(name, value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPathUUID(t *testing.T) {
	id := uuid.New()
	got, err := pathUUID(requestWithParam("campaignID", id.String()), "campaignID")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = pathUUID(requestWithParam("campaignID", "not-a-uuid"), "campaignID")
	assert.Error(t, err)
}

func TestQueryUUID(t *testing.T) {
	id := uuid.New()
	r := httptest.NewRequest(http.MethodGet, "/?advertiser_id="+id.String(), nil)
	got, err := queryUUID(r, "advertiser_id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	got, err = queryUUID(r, "advertiser_id")
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, got)

	r = httptest.NewRequest(http.MethodGet, "/?advertiser_id=zzz", nil)
	_, err = queryUUID(r, "advertiser_id")
	assert.Error(t, err)
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?year=2026", nil)
	n, err := queryInt(r, "year", 2000)
	require.NoError(t, err)
	assert.Equal(t, 2026, n)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	n, err = queryInt(r, "year", 2000)
	require.NoError(t, err)
	assert.Equal(t, 2000, n)

	r = httptest.NewRequest(http.MethodGet, "/?year=twenty", nil)
	_, err = queryInt(r, "year", 2000)
	assert.Error(t, err)
}

func TestQueryDate(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?issued_from=2026-03-01", nil)
	got, err := queryDate(r, "issued_from")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	got, err = queryDate(r, "issued_from")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	r = httptest.NewRequest(http.MethodGet, "/?issued_from=03-01-2026", nil)
	_, err = queryDate(r, "issued_from")
	assert.Error(t, err)
}
