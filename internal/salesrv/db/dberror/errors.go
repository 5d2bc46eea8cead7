package dberror

import (
	"net/http"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
)

var (
	ErrDatabase            apperrors.Error = apperrors.New("db error").SetStatusCode(http.StatusInternalServerError)
	ErrAlreadyExists       apperrors.Error = ErrDatabase.New("already exists").SetStatusCode(http.StatusConflict)
	ErrNotFound            apperrors.Error = ErrDatabase.New("not found").SetStatusCode(http.StatusNotFound)
	ErrInvalidInput        apperrors.Error = ErrDatabase.New("invalid input").SetStatusCode(http.StatusBadRequest)
	ErrInvalidReference    apperrors.Error = ErrDatabase.New("referenced record not found").SetStatusCode(http.StatusBadRequest)
	ErrMissingOrgContext   apperrors.Error = ErrInvalidInput.New("missing organization context").SetStatusCode(http.StatusBadRequest)
	ErrNoConnection        apperrors.Error = ErrDatabase.New("no database connection").SetStatusCode(http.StatusInternalServerError)
	ErrInvalidTransition   apperrors.Error = ErrDatabase.New("invalid status transition").SetStatusCode(http.StatusConflict)
	ErrImmutableRecord     apperrors.Error = ErrDatabase.New("record is immutable").SetStatusCode(http.StatusConflict)
	ErrSchemaProvisioning  apperrors.Error = ErrDatabase.New("schema provisioning failed").SetStatusCode(http.StatusInternalServerError)
	ErrConstraintViolation apperrors.Error = ErrInvalidInput.New("constraint violation").SetStatusCode(http.StatusBadRequest)
)
