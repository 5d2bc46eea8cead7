package salesmanager

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLines(t *testing.T) {
	lines, total := buildLines([]*InvoiceLineRequest{
		{Description: "midroll on 2026-03-02", Quantity: 2, UnitAmount: dec("150.50")},
		{Description: "preroll on 2026-03-09", Quantity: 1, UnitAmount: dec("99.99")},
	})
	require.Len(t, lines, 2)
	assert.Equal(t, "301", lines[0].Amount.String())
	assert.Equal(t, "99.99", lines[1].Amount.String())
	assert.Equal(t, "400.99", total.String())
}

func TestBuildLinesEmpty(t *testing.T) {
	lines, total := buildLines(nil)
	assert.Empty(t, lines)
	assert.True(t, total.IsZero())
}

func TestListInvoicesRejectsInvertedDateRange(t *testing.T) {
	from := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := ListInvoices(context.Background(), "", uuid.Nil, from, to)
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrInvalidRequest))
}
