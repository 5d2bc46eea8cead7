package apis

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routeSet(t *testing.T) map[string]bool {
	t.Helper()
	routes := make(map[string]bool)
	err := chi.Walk(Router(), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)
	return routes
}

func TestRouterRegistersOperations(t *testing.T) {
	routes := routeSet(t)

	for _, want := range []string{
		"POST /campaigns",
		"GET /campaigns/{campaignID}/summary",
		"POST /invoices/overdue/sweep",
		"GET /invoices/{invoiceID}/pdf",
		"GET /proposals/{proposalID}/versions",
		"POST /budgets/bulk",
		"PUT /approvals/{approvalID}/status",
		"POST /orgs",
	} {
		assert.True(t, routes[want], want)
	}
}
