package salesmanager

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func advertiserEntry(id uuid.UUID, budget, actual string) *models.BudgetEntry {
	return &models.BudgetEntry{
		EntityType:   models.BudgetEntityAdvertiser,
		EntityID:     id,
		Year:         2026,
		Month:        3,
		BudgetAmount: dec(budget),
		ActualAmount: dec(actual),
	}
}

func findNode(nodes []*RollupNode, id uuid.UUID) *RollupNode {
	for _, n := range nodes {
		if n.EntityID == id {
			return n
		}
	}
	return nil
}

func TestComputeRollupHierarchy(t *testing.T) {
	advA := uuid.New()
	advB := uuid.New()
	agency := uuid.New()
	seller := uuid.New()

	entries := []*models.BudgetEntry{
		advertiserEntry(advA, "1000", "900"),
		advertiserEntry(advB, "500", "600"),
	}
	links := []*models.AdvertiserLink{
		{AdvertiserID: advA, AgencyID: &agency, SellerID: &seller, Name: "Acme Coffee"},
		{AdvertiserID: advB, AgencyID: &agency, SellerID: &seller, Name: "Blue Mattress"},
	}

	r := ComputeRollup(2026, 3, entries, links)

	require.Len(t, r.Advertisers, 2)
	require.Len(t, r.Agencies, 1)
	require.Len(t, r.Sellers, 1)

	ag := findNode(r.Agencies, agency)
	require.NotNil(t, ag)
	assert.Equal(t, "1500", ag.RolledUp.Budget.String())
	assert.Equal(t, "1500", ag.RolledUp.Actual.String())
	assert.Len(t, ag.Children, 2)

	se := findNode(r.Sellers, seller)
	require.NotNil(t, se)
	assert.Equal(t, "1500", se.RolledUp.Budget.String())
	assert.Equal(t, "1500", se.RolledUp.Actual.String())

	// Grand total counts each advertiser amount once.
	assert.Equal(t, "1500", r.Grand.Budget.String())
	assert.Equal(t, "1500", r.Grand.Actual.String())
}

func TestComputeRollupParentEqualsChildren(t *testing.T) {
	advA := uuid.New()
	advB := uuid.New()
	agency := uuid.New()
	seller := uuid.New()

	entries := []*models.BudgetEntry{
		advertiserEntry(advA, "750.25", "0"),
		advertiserEntry(advB, "249.75", "0"),
	}
	links := []*models.AdvertiserLink{
		{AdvertiserID: advA, AgencyID: &agency, SellerID: &seller},
		{AdvertiserID: advB, AgencyID: &agency, SellerID: &seller},
	}

	r := ComputeRollup(2026, 0, entries, links)
	ag := findNode(r.Agencies, agency)
	require.NotNil(t, ag)

	sum := decimal.Zero
	for _, childID := range ag.Children {
		child := findNode(r.Advertisers, childID)
		require.NotNil(t, child)
		sum = sum.Add(child.RolledUp.Budget)
	}
	assert.True(t, ag.RolledUp.Budget.Equal(sum))
}

func TestComputeRollupUnassignedBucket(t *testing.T) {
	adv := uuid.New()
	entries := []*models.BudgetEntry{advertiserEntry(adv, "200", "100")}

	// No hierarchy edge at all.
	r := ComputeRollup(2026, 3, entries, nil)

	ag := findNode(r.Agencies, uuid.Nil)
	require.NotNil(t, ag, "unassigned advertisers roll into the zero-UUID bucket")
	assert.Equal(t, "200", ag.RolledUp.Budget.String())

	se := findNode(r.Sellers, uuid.Nil)
	require.NotNil(t, se)
	assert.Equal(t, "200", se.RolledUp.Budget.String())
}

func TestComputeRollupOwnEntriesAddOnTop(t *testing.T) {
	adv := uuid.New()
	agency := uuid.New()
	seller := uuid.New()

	entries := []*models.BudgetEntry{
		advertiserEntry(adv, "100", "100"),
		{
			EntityType:   models.BudgetEntityAgency,
			EntityID:     agency,
			Year:         2026,
			Month:        3,
			BudgetAmount: dec("50"),
			ActualAmount: dec("25"),
		},
		{
			EntityType:   models.BudgetEntitySeller,
			EntityID:     seller,
			Year:         2026,
			Month:        3,
			BudgetAmount: dec("10"),
			ActualAmount: dec("5"),
		},
	}
	links := []*models.AdvertiserLink{
		{AdvertiserID: adv, AgencyID: &agency, SellerID: &seller},
	}

	r := ComputeRollup(2026, 3, entries, links)

	ag := findNode(r.Agencies, agency)
	require.NotNil(t, ag)
	assert.Equal(t, "50", ag.Own.Budget.String())
	assert.Equal(t, "150", ag.RolledUp.Budget.String())

	se := findNode(r.Sellers, seller)
	require.NotNil(t, se)
	assert.Equal(t, "10", se.Own.Budget.String())
	assert.Equal(t, "110", se.RolledUp.Budget.String())

	// Own entries at every level count toward the grand total exactly once.
	assert.Equal(t, "160", r.Grand.Budget.String())
}

func TestComputeRollupStableOrder(t *testing.T) {
	advAssigned := uuid.New()
	advUnassigned := uuid.New()
	agency := uuid.New()
	seller := uuid.New()

	entries := []*models.BudgetEntry{
		advertiserEntry(advAssigned, "10", "0"),
		advertiserEntry(advUnassigned, "20", "0"),
	}
	links := []*models.AdvertiserLink{
		{AdvertiserID: advAssigned, AgencyID: &agency, SellerID: &seller},
	}

	r := ComputeRollup(2026, 3, entries, links)
	require.Len(t, r.Agencies, 2)
	assert.Equal(t, uuid.Nil, r.Agencies[len(r.Agencies)-1].EntityID,
		"unassigned bucket sorts last")
}

func TestComputeRollupAttainment(t *testing.T) {
	advA := uuid.New()
	advB := uuid.New()
	agency := uuid.New()
	seller := uuid.New()

	entries := []*models.BudgetEntry{
		advertiserEntry(advA, "1000", "900"),
		advertiserEntry(advB, "500", "600"),
	}
	links := []*models.AdvertiserLink{
		{AdvertiserID: advA, AgencyID: &agency, SellerID: &seller},
		{AdvertiserID: advB, AgencyID: &agency, SellerID: &seller},
	}

	r := ComputeRollup(2026, 3, entries, links)

	a := findNode(r.Advertisers, advA)
	require.NotNil(t, a)
	assert.Equal(t, "90", a.RolledUp.Attainment.String())

	ag := findNode(r.Agencies, agency)
	require.NotNil(t, ag)
	assert.Equal(t, "100", ag.RolledUp.Attainment.String())

	assert.Equal(t, "100", r.Grand.Attainment.String())
}

func TestComputeRollupAttainmentZeroBudget(t *testing.T) {
	adv := uuid.New()
	entries := []*models.BudgetEntry{advertiserEntry(adv, "0", "250")}

	r := ComputeRollup(2026, 3, entries, nil)

	a := findNode(r.Advertisers, adv)
	require.NotNil(t, a)
	assert.True(t, a.RolledUp.Attainment.IsZero())
	assert.True(t, r.Grand.Attainment.IsZero())
}

func TestComputeRollupAttainmentRounds(t *testing.T) {
	adv := uuid.New()
	entries := []*models.BudgetEntry{advertiserEntry(adv, "300", "100")}

	r := ComputeRollup(2026, 3, entries, nil)

	a := findNode(r.Advertisers, adv)
	require.NotNil(t, a)
	assert.Equal(t, "33.33", a.RolledUp.Attainment.String())
}
