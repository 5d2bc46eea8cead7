package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
	InvoiceStatusVoid    = "void"
)

const (
	InvoiceTypeStandard = "standard"
	InvoiceTypePreBill  = "prebill"
)

/*
 invoices: number unique. Amount is maintained as the sum of the line
 amounts on every write.
*/
type Invoice struct {
	InvoiceID    uuid.UUID       `db:"invoice_id"`
	Number       string          `db:"number"`
	AdvertiserID uuid.UUID       `db:"advertiser_id"`
	CampaignID   *uuid.UUID      `db:"campaign_id"`
	Type         string          `db:"type"`
	Status       string          `db:"status"`
	Amount       decimal.Decimal `db:"amount"`
	IssueDate    time.Time       `db:"issue_date"`
	DueDate      time.Time       `db:"due_date"`
	SentAt       *time.Time      `db:"sent_at"`
	PaidAt       *time.Time      `db:"paid_at"`
	CreatedBy    uuid.UUID       `db:"created_by"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

type InvoiceLine struct {
	LineID      uuid.UUID       `db:"line_id"`
	InvoiceID   uuid.UUID       `db:"invoice_id"`
	SlotID      *uuid.UUID      `db:"slot_id"`
	Description string          `db:"description"`
	Quantity    int             `db:"quantity"`
	UnitAmount  decimal.Decimal `db:"unit_amount"`
	Amount      decimal.Decimal `db:"amount"`
}

// ValidInvoiceTransition reports whether an invoice may move between
// statuses. Paid and void are terminal.
func ValidInvoiceTransition(from, to string) bool {
	allowed := map[string][]string{
		InvoiceStatusDraft:   {InvoiceStatusSent, InvoiceStatusVoid},
		InvoiceStatusSent:    {InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusVoid},
		InvoiceStatusOverdue: {InvoiceStatusPaid, InvoiceStatusVoid},
	}
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}
