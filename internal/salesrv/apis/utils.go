package apis

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/podcastflow/podcastflow-pro/internal/common/httpx"
)

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, httpx.ErrInvalidRequest("invalid " + name)
	}
	return id, nil
}

// queryUUID parses an optional UUID query parameter. Absent values return
// uuid.Nil with no error.
func queryUUID(r *http.Request, name string) (uuid.UUID, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, httpx.ErrInvalidRequest("invalid " + name)
	}
	return id, nil
}

// queryDate parses an optional YYYY-MM-DD query parameter. Absent values
// return the zero time with no error.
func queryDate(r *http.Request, name string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, httpx.ErrInvalidRequest("invalid " + name + ", expected YYYY-MM-DD")
	}
	return t, nil
}

// queryInt parses an optional integer query parameter, returning def when
// absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, httpx.ErrInvalidRequest("invalid " + name)
	}
	return n, nil
}

func okResponse(v any) *httpx.Response {
	return &httpx.Response{StatusCode: http.StatusOK, Response: v}
}

func createdResponse(v any, location string) *httpx.Response {
	return &httpx.Response{StatusCode: http.StatusCreated, Location: location, Response: v}
}

func noContentResponse() *httpx.Response {
	return &httpx.Response{StatusCode: http.StatusNoContent}
}
