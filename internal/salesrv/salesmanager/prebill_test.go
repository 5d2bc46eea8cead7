package salesmanager

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

func TestBuildInvoicePDF(t *testing.T) {
	inv := &models.Invoice{
		InvoiceID:    uuid.New(),
		Number:       "PRE-7GK2M4PQWX",
		Type:         models.InvoiceTypePreBill,
		AdvertiserID: uuid.New(),
		Status:       models.InvoiceStatusDraft,
		Amount:       dec("450.00"),
		IssueDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	lines := []*models.InvoiceLine{
		{Description: "midroll on 2026-03-02", Quantity: 1, UnitAmount: dec("300"), Amount: dec("300")},
		{Description: "preroll on 2026-03-09", Quantity: 1, UnitAmount: dec("150"), Amount: dec("150")},
	}

	doc, err := buildInvoicePDF(inv, "Acme Coffee", lines)
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}
