package salesmanager

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCampaignRequest() *CampaignRequest {
	return &CampaignRequest{
		Name:         "Spring Coffee Push",
		AdvertiserID: uuid.New(),
		Probability:  60,
		StartDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		TotalBudget:  dec("25000"),
	}
}

func TestValidateCampaignRequest(t *testing.T) {
	assert.Nil(t, validateStruct(validCampaignRequest()))
}

func TestValidateCampaignRequestRejectsProbability(t *testing.T) {
	req := validCampaignRequest()
	req.Probability = 150
	err := validateStruct(req)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "probability")
}

func TestValidateCampaignRequestRejectsNegativeBudget(t *testing.T) {
	req := validCampaignRequest()
	req.TotalBudget = dec("-1")
	err := validateStruct(req)
	require.NotNil(t, err)
}

func TestValidateCampaignRequestRejectsMissingName(t *testing.T) {
	req := validCampaignRequest()
	req.Name = ""
	err := validateStruct(req)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "invalid value for name")
}

func TestCampaignRequestDateOrder(t *testing.T) {
	req := validCampaignRequest()
	req.EndDate = req.StartDate.AddDate(0, -1, 0)
	err := req.validateDates()
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrInvalidRequest))
}

func TestValidateBudgetEntryRequest(t *testing.T) {
	req := &BudgetEntryRequest{
		EntityType:   "advertiser",
		EntityID:     uuid.New(),
		Year:         2026,
		Month:        3,
		BudgetAmount: dec("100"),
	}
	assert.Nil(t, validateStruct(req))

	req.Month = 13
	assert.NotNil(t, validateStruct(req))
}
