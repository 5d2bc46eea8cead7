package assets

import (
	"net/http"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
)

var (
	ErrAssets apperrors.Error = apperrors.New("asset error").SetStatusCode(http.StatusInternalServerError)

	ErrInvalidAsset  = ErrAssets.New("invalid asset request").SetStatusCode(http.StatusBadRequest)
	ErrNotUploaded   = ErrAssets.New("asset has not been uploaded").SetStatusCode(http.StatusConflict)
	ErrAlreadyFinal  = ErrAssets.New("asset is no longer pending").SetStatusCode(http.StatusConflict)
	ErrSignURL       = ErrAssets.New("unable to sign storage URL")
	ErrNoStorage     = ErrAssets.New("asset storage is not configured").SetStatusCode(http.StatusServiceUnavailable)
)
