package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
)

func TestWrapHttpRspSuccess(t *testing.T) {
	h := WrapHttpRsp(func(r *http.Request) (*Response, error) {
		return &Response{
			StatusCode: http.StatusCreated,
			Location:   "/v1/campaigns/abc",
			Response:   map[string]string{"name": "q3-launch"},
		}, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/campaigns", nil)
	rr := httptest.NewRecorder()
	h(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/v1/campaigns/abc", rr.Header().Get("Location"))
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"q3-launch"}`, rr.Body.String())
}

func TestWrapHttpRspAppError(t *testing.T) {
	notFound := apperrors.New("campaign not found").SetStatusCode(http.StatusNotFound)
	h := WrapHttpRsp(func(r *http.Request) (*Response, error) {
		return nil, notFound
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/campaigns/missing", nil)
	rr := httptest.NewRecorder()
	h(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"result":0,"error":"campaign not found"}`, rr.Body.String())
}

func TestWrapHttpRspPlainError(t *testing.T) {
	h := WrapHttpRsp(func(r *http.Request) (*Response, error) {
		return nil, errors.New("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/budgets", nil)
	rr := httptest.NewRecorder()
	h(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestWrapHttpRspRawPayload(t *testing.T) {
	h := WrapHttpRsp(func(r *http.Request) (*Response, error) {
		return &Response{
			StatusCode:  http.StatusOK,
			ContentType: "application/pdf",
			Raw:         []byte("%PDF-1.4"),
		}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/invoices/abc/document", nil)
	rr := httptest.NewRecorder()
	h(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4", rr.Body.String())
}

func TestGetRequestDataRejectsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/invoices", nil)
	var out struct{}
	err := GetRequestData(req, &out)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrReqMethodNotSupported())
}
