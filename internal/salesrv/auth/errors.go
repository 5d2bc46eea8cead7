package auth

import (
	"net/http"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
)

var (
	ErrAuth apperrors.Error = apperrors.New("authentication error").SetStatusCode(http.StatusUnauthorized)

	ErrInvalidCredentials    = ErrAuth.New("invalid email or password")
	ErrDisabledUser          = ErrAuth.New("user is disabled")
	ErrInvalidToken          = ErrAuth.New("invalid session token")
	ErrExpiredToken          = ErrAuth.New("session token expired")
	ErrMissingToken          = ErrAuth.New("missing session token")
	ErrUnableToGenerateToken = apperrors.New("unable to generate session token").SetStatusCode(http.StatusInternalServerError)
)
