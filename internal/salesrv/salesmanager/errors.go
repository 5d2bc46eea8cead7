package salesmanager

import (
	"net/http"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
)

var (
	ErrSalesManager apperrors.Error = apperrors.New("sales error").SetStatusCode(http.StatusInternalServerError)

	ErrInvalidRequest    = ErrSalesManager.New("invalid request").SetStatusCode(http.StatusBadRequest)
	ErrInvalidTransition = ErrSalesManager.New("invalid status transition").SetStatusCode(http.StatusConflict)
	ErrNotAllowed        = ErrSalesManager.New("operation not allowed for role").SetStatusCode(http.StatusForbidden)
	ErrNothingToBill     = ErrSalesManager.New("no billable slots").SetStatusCode(http.StatusConflict)
	ErrImmutable         = ErrSalesManager.New("record cannot be modified").SetStatusCode(http.StatusConflict)
)
