package salesmanager

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

// InvoiceLineRequest is one line of a standard invoice.
type InvoiceLineRequest struct {
	Description string          `json:"description" validate:"required"`
	Quantity    int             `json:"quantity" validate:"min=1"`
	UnitAmount  decimal.Decimal `json:"unit_amount" validate:"nonneg_decimal"`
}

// InvoiceRequest creates a standard invoice.
type InvoiceRequest struct {
	AdvertiserID uuid.UUID             `json:"advertiser_id" validate:"required"`
	CampaignID   *uuid.UUID            `json:"campaign_id"`
	IssueDate    time.Time             `json:"issue_date" validate:"required"`
	DueDate      time.Time             `json:"due_date" validate:"required"`
	Lines        []*InvoiceLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func buildLines(reqs []*InvoiceLineRequest) ([]*models.InvoiceLine, decimal.Decimal) {
	lines := make([]*models.InvoiceLine, 0, len(reqs))
	total := decimal.Zero
	for _, lr := range reqs {
		amount := lr.UnitAmount.Mul(decimal.NewFromInt(int64(lr.Quantity)))
		lines = append(lines, &models.InvoiceLine{
			Description: lr.Description,
			Quantity:    lr.Quantity,
			UnitAmount:  lr.UnitAmount,
			Amount:      amount,
		})
		total = total.Add(amount)
	}
	return lines, total
}

// CreateInvoice writes a standard invoice. The amount is the sum of the
// lines; the number is generated server side.
func CreateInvoice(ctx context.Context, req *InvoiceRequest) (*models.Invoice, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.DueDate.Before(req.IssueDate) {
		return nil, ErrInvalidRequest.Msg("due_date must not precede issue_date")
	}
	user := salescommon.GetUserContext(ctx)
	if user == nil {
		return nil, ErrNotAllowed
	}
	lines, total := buildLines(req.Lines)
	inv := &models.Invoice{
		Number:       salescommon.NewInvoiceNumber(),
		AdvertiserID: req.AdvertiserID,
		CampaignID:   req.CampaignID,
		Type:         models.InvoiceTypeStandard,
		Status:       models.InvoiceStatusDraft,
		Amount:       total,
		IssueDate:    req.IssueDate,
		DueDate:      req.DueDate,
		CreatedBy:    user.UserID,
	}
	if err := db.DB(ctx).CreateInvoice(ctx, inv, lines); err != nil {
		return nil, err
	}
	return inv, nil
}

func GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, apperrors.Error) {
	return db.DB(ctx).GetInvoice(ctx, invoiceID)
}

func GetInvoiceLines(ctx context.Context, invoiceID uuid.UUID) ([]*models.InvoiceLine, apperrors.Error) {
	return db.DB(ctx).GetInvoiceLines(ctx, invoiceID)
}

// ListInvoices filters by status, advertiser and issue-date range; zero
// values leave a filter off.
func ListInvoices(ctx context.Context, status string, advertiserID uuid.UUID, issuedFrom, issuedTo time.Time) ([]*models.Invoice, apperrors.Error) {
	if !issuedFrom.IsZero() && !issuedTo.IsZero() && issuedTo.Before(issuedFrom) {
		return nil, ErrInvalidRequest.Msg("issued_to precedes issued_from")
	}
	return db.DB(ctx).ListInvoices(ctx, status, advertiserID, issuedFrom, issuedTo)
}

// UpdateInvoiceStatus applies the invoice state machine. Voiding a pre-bill
// marks its billed slots released so they can be billed again.
func UpdateInvoiceStatus(ctx context.Context, invoiceID uuid.UUID, status string) (*models.Invoice, apperrors.Error) {
	inv, err := db.DB(ctx).GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !models.ValidInvoiceTransition(inv.Status, status) {
		return nil, ErrInvalidTransition.Msg("invoice cannot move from " + inv.Status + " to " + status)
	}
	now := time.Now()
	if err := db.DB(ctx).UpdateInvoiceStatus(ctx, invoiceID, status, now); err != nil {
		return nil, err
	}
	if status == models.InvoiceStatusVoid && inv.Type == models.InvoiceTypePreBill {
		if err := db.DB(ctx).ReleasePreBillSlots(ctx, invoiceID); err != nil {
			return nil, err
		}
	}
	inv.Status = status
	switch status {
	case models.InvoiceStatusSent:
		inv.SentAt = &now
	case models.InvoiceStatusPaid:
		inv.PaidAt = &now
	}
	return inv, nil
}

// MarkOverdueInvoices flips sent invoices past their due date to overdue.
// Returns the invoices it transitioned.
func MarkOverdueInvoices(ctx context.Context, asOf time.Time) ([]*models.Invoice, apperrors.Error) {
	sent, err := db.DB(ctx).ListInvoices(ctx, models.InvoiceStatusSent, uuid.Nil, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	var flipped []*models.Invoice
	for _, inv := range sent {
		if inv.DueDate.Before(asOf) {
			if err := db.DB(ctx).UpdateInvoiceStatus(ctx, inv.InvoiceID, models.InvoiceStatusOverdue, asOf); err != nil {
				return nil, err
			}
			inv.Status = models.InvoiceStatusOverdue
			flipped = append(flipped, inv)
		}
	}
	return flipped, nil
}
