package integrations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

func TestQuickBooksInvoicePayload(t *testing.T) {
	amount, _ := decimal.NewFromString("450.00")
	lineAmount, _ := decimal.NewFromString("300")
	inv := &models.Invoice{
		InvoiceID: uuid.New(),
		Number:    "INV-7GK2M4PQWX",
		Amount:    amount,
		IssueDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	lines := []*models.InvoiceLine{
		{Description: "midroll on 2026-03-02", Quantity: 2, UnitAmount: lineAmount, Amount: lineAmount},
	}

	payload := quickBooksInvoicePayload(inv, lines)
	doc := gjson.ParseBytes(payload)

	assert.Equal(t, "INV-7GK2M4PQWX", doc.Get("DocNumber").String())
	assert.Equal(t, 450.0, doc.Get("TotalAmt").Float())
	assert.Equal(t, "2026-03-01", doc.Get("TxnDate").String())
	assert.Equal(t, "2026-03-31", doc.Get("DueDate").String())
	assert.Equal(t, "podcastflow:"+inv.InvoiceID.String(), doc.Get("PrivateNote").String())
	assert.Equal(t, "midroll on 2026-03-02", doc.Get("Line.0.Description").String())
	assert.Equal(t, "SalesItemLineDetail", doc.Get("Line.0.DetailType").String())
	assert.Equal(t, int64(2), doc.Get("Line.0.SalesItemLineDetail.Qty").Int())
}

func TestFetchWithRetryRetriesServerErrors(t *testing.T) {
	old := syncBackoff
	syncBackoff = 5 * time.Millisecond
	defer func() { syncBackoff = old }()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	body, err := fetchWithRetry(context.Background(), srv.URL, "Bearer tok")
	require.NoError(t, err)
	assert.True(t, gjson.GetBytes(body, "ok").Bool())
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchWithRetryGivesUpOnClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := fetchWithRetry(context.Background(), srv.URL, "Bearer bad")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "4xx responses are not retried")
}

func TestPostWithRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := postWithRetry(context.Background(), srv.URL, "Bearer tok", []byte(`{}`))
	assert.NoError(t, err)
}
