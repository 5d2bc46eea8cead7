package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorChaining(t *testing.T) {
	base := New("db error").SetStatusCode(http.StatusInternalServerError)
	notFound := base.New("not found").SetStatusCode(http.StatusNotFound)

	// a child derived with Msg keeps the sentinel identity
	err := notFound.Msg("campaign not found")
	assert.Equal(t, "campaign not found", err.Error())
	assert.True(t, errors.Is(err, notFound))
	assert.True(t, errors.Is(err, base))
	assert.Equal(t, http.StatusNotFound, err.StatusCode())
}

func TestErrorWrapping(t *testing.T) {
	base := New("invoice error").SetStatusCode(http.StatusBadRequest)
	cause := errors.New("line amount is negative")

	err := base.New("invalid invoice").Err(cause)
	assert.True(t, errors.Is(err, cause))

	// ErrorAll is compact unless expansion is requested
	assert.Equal(t, "invalid invoice", err.ErrorAll())
	err.SetExpandError(true)
	assert.Equal(t, "invalid invoice: line amount is negative", err.ErrorAll())
}

func TestStatusCodeInheritance(t *testing.T) {
	base := New("auth error").SetStatusCode(http.StatusUnauthorized)
	child := base.New("token expired")
	assert.Equal(t, http.StatusUnauthorized, child.StatusCode())

	forbidden := child.SetStatusCode(http.StatusForbidden)
	assert.Equal(t, http.StatusForbidden, forbidden.StatusCode())
}
