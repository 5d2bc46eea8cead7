package salesmanager

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

// BudgetEntryRequest carries one month's figures for an entity.
type BudgetEntryRequest struct {
	EntityType         string          `json:"entity_type" validate:"required"`
	EntityID           uuid.UUID       `json:"entity_id" validate:"required"`
	Year               int             `json:"year" validate:"min=2000,max=2100"`
	Month              int             `json:"month" validate:"min=1,max=12"`
	BudgetAmount       decimal.Decimal `json:"budget_amount" validate:"nonneg_decimal"`
	ActualAmount       decimal.Decimal `json:"actual_amount" validate:"nonneg_decimal"`
	PreviousYearAmount decimal.Decimal `json:"previous_year_amount" validate:"nonneg_decimal"`
	Notes              string          `json:"notes"`
}

func UpsertBudgetEntry(ctx context.Context, req *BudgetEntryRequest) (*models.BudgetEntry, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if !models.ValidBudgetEntityType(req.EntityType) {
		return nil, ErrInvalidRequest.Msg("unknown entity type " + req.EntityType)
	}
	entry := &models.BudgetEntry{
		EntityType:         req.EntityType,
		EntityID:           req.EntityID,
		Year:               req.Year,
		Month:              req.Month,
		BudgetAmount:       req.BudgetAmount,
		ActualAmount:       req.ActualAmount,
		PreviousYearAmount: req.PreviousYearAmount,
		Notes:              req.Notes,
	}
	if err := db.DB(ctx).UpsertBudgetEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// BulkUpsertBudgetEntries applies a batch of grid edits. Entries are
// validated up front so a bad row rejects the whole batch.
func BulkUpsertBudgetEntries(ctx context.Context, reqs []*BudgetEntryRequest) ([]*models.BudgetEntry, apperrors.Error) {
	if len(reqs) == 0 {
		return nil, ErrInvalidRequest.Msg("empty batch")
	}
	for _, req := range reqs {
		if err := validateStruct(req); err != nil {
			return nil, err
		}
		if !models.ValidBudgetEntityType(req.EntityType) {
			return nil, ErrInvalidRequest.Msg("unknown entity type " + req.EntityType)
		}
	}
	entries := make([]*models.BudgetEntry, 0, len(reqs))
	for _, req := range reqs {
		entry, err := UpsertBudgetEntry(ctx, req)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func DeleteBudgetEntry(ctx context.Context, entryID uuid.UUID) apperrors.Error {
	return db.DB(ctx).DeleteBudgetEntry(ctx, entryID)
}

func ListBudgetEntries(ctx context.Context, year, month int) ([]*models.BudgetEntry, apperrors.Error) {
	if year < 2000 || year > 2100 {
		return nil, ErrInvalidRequest.Msg("year out of range")
	}
	if month < 0 || month > 12 {
		return nil, ErrInvalidRequest.Msg("month out of range")
	}
	return db.DB(ctx).ListBudgetEntries(ctx, year, month)
}

// RollupTotals aggregates the three amount columns. Attainment is actual as
// a percentage of budget, zero when no budget is set.
type RollupTotals struct {
	Budget       decimal.Decimal `json:"budget"`
	Actual       decimal.Decimal `json:"actual"`
	PreviousYear decimal.Decimal `json:"previous_year"`
	Attainment   decimal.Decimal `json:"attainment_pct"`
}

func (t *RollupTotals) add(e *models.BudgetEntry) {
	t.Budget = t.Budget.Add(e.BudgetAmount)
	t.Actual = t.Actual.Add(e.ActualAmount)
	t.PreviousYear = t.PreviousYear.Add(e.PreviousYearAmount)
}

var hundred = decimal.NewFromInt(100)

func (t *RollupTotals) finalize() {
	if t.Budget.IsZero() {
		t.Attainment = decimal.Zero
		return
	}
	t.Attainment = t.Actual.Div(t.Budget).Mul(hundred).Round(2)
}

// RollupNode is one entity's line in the roll-up report.
type RollupNode struct {
	EntityType string          `json:"entity_type"`
	EntityID   uuid.UUID       `json:"entity_id"`
	Name       string          `json:"name,omitempty"`
	Own        RollupTotals    `json:"own"`
	RolledUp   RollupTotals    `json:"rolled_up"`
	Children   []uuid.UUID     `json:"children,omitempty"`
}

// Rollup is the full report for one year (or one month of it).
type Rollup struct {
	Year        int           `json:"year"`
	Month       int           `json:"month,omitempty"`
	Advertisers []*RollupNode `json:"advertisers"`
	Agencies    []*RollupNode `json:"agencies"`
	Sellers     []*RollupNode `json:"sellers"`
	Grand       RollupTotals  `json:"grand_total"`
}

// unassignedBucket collects advertiser amounts whose hierarchy edge is
// missing, so agency and seller totals still reconcile with the grand total.
var unassignedBucket = uuid.Nil

// ComputeRollup aggregates advertiser entries up the hierarchy: advertiser
// amounts roll into the owning agency and seller, and agency and seller own
// entries add on top. The grand total counts each advertiser amount once.
func ComputeRollup(year, month int, entries []*models.BudgetEntry, links []*models.AdvertiserLink) *Rollup {
	linkByAdvertiser := make(map[uuid.UUID]*models.AdvertiserLink, len(links))
	for _, l := range links {
		linkByAdvertiser[l.AdvertiserID] = l
	}

	advertisers := make(map[uuid.UUID]*RollupNode)
	agencies := make(map[uuid.UUID]*RollupNode)
	sellers := make(map[uuid.UUID]*RollupNode)

	node := func(m map[uuid.UUID]*RollupNode, entityType string, id uuid.UUID) *RollupNode {
		n, ok := m[id]
		if !ok {
			n = &RollupNode{EntityType: entityType, EntityID: id}
			m[id] = n
		}
		return n
	}

	r := &Rollup{Year: year, Month: month}

	for _, e := range entries {
		switch e.EntityType {
		case models.BudgetEntityAdvertiser:
			adv := node(advertisers, models.BudgetEntityAdvertiser, e.EntityID)
			adv.Own.add(e)
			adv.RolledUp.add(e)
			r.Grand.add(e)

			agencyID := unassignedBucket
			sellerID := unassignedBucket
			if l, ok := linkByAdvertiser[e.EntityID]; ok {
				adv.Name = l.Name
				if l.AgencyID != nil {
					agencyID = *l.AgencyID
				}
				if l.SellerID != nil {
					sellerID = *l.SellerID
				}
			}
			ag := node(agencies, models.BudgetEntityAgency, agencyID)
			ag.RolledUp.add(e)
			ag.Children = appendChild(ag.Children, e.EntityID)

			se := node(sellers, models.BudgetEntitySeller, sellerID)
			se.RolledUp.add(e)
			se.Children = appendChild(se.Children, e.EntityID)

		case models.BudgetEntityAgency:
			ag := node(agencies, models.BudgetEntityAgency, e.EntityID)
			ag.Own.add(e)
			ag.RolledUp.add(e)
			r.Grand.add(e)

		case models.BudgetEntitySeller:
			se := node(sellers, models.BudgetEntitySeller, e.EntityID)
			se.Own.add(e)
			se.RolledUp.add(e)
			r.Grand.add(e)
		}
	}

	r.Advertisers = flattenNodes(advertisers)
	r.Agencies = flattenNodes(agencies)
	r.Sellers = flattenNodes(sellers)
	r.Grand.finalize()
	return r
}

func appendChild(children []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for _, c := range children {
		if c == id {
			return children
		}
	}
	return append(children, id)
}

func flattenNodes(m map[uuid.UUID]*RollupNode) []*RollupNode {
	out := make([]*RollupNode, 0, len(m))
	for _, n := range m {
		n.Own.finalize()
		n.RolledUp.finalize()
		out = append(out, n)
	}
	// Stable order for the API: unassigned bucket last, otherwise by ID.
	sort.Slice(out, func(i, j int) bool { return nodeLess(out[i], out[j]) })
	return out
}

func nodeLess(a, b *RollupNode) bool {
	if a.EntityID == unassignedBucket {
		return false
	}
	if b.EntityID == unassignedBucket {
		return true
	}
	return a.EntityID.String() < b.EntityID.String()
}

// GetBudgetRollup loads the year's entries and hierarchy and computes the
// roll-up report.
func GetBudgetRollup(ctx context.Context, year, month int) (*Rollup, apperrors.Error) {
	entries, err := ListBudgetEntries(ctx, year, month)
	if err != nil {
		return nil, err
	}
	links, err := db.DB(ctx).ListAdvertiserLinks(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeRollup(year, month, entries, links), nil
}
