package salesmanager

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

// PreBillRequest pre-bills a campaign's unbilled slots.
type PreBillRequest struct {
	CampaignID uuid.UUID `json:"campaign_id" validate:"required"`
	DueDate    time.Time `json:"due_date" validate:"required"`
}

// CreatePreBill builds a pre-bill invoice from the campaign's booked and
// aired slots, marking them billed in the same transaction.
func CreatePreBill(ctx context.Context, req *PreBillRequest) (*models.Invoice, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	user := salescommon.GetUserContext(ctx)
	if user == nil {
		return nil, ErrNotAllowed
	}

	c, err := db.DB(ctx).GetCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	slots, err := db.DB(ctx).ListUnbilledSlots(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrNothingToBill
	}

	lines := make([]*models.InvoiceLine, 0, len(slots))
	slotIDs := make([]uuid.UUID, 0, len(slots))
	total := decimal.Zero
	for _, slot := range slots {
		slotID := slot.SlotID
		lines = append(lines, &models.InvoiceLine{
			SlotID:      &slotID,
			Description: slot.SlotType + " on " + slot.AirDate.Format("2006-01-02"),
			Quantity:    1,
			UnitAmount:  slot.Rate,
			Amount:      slot.Rate,
		})
		slotIDs = append(slotIDs, slotID)
		total = total.Add(slot.Rate)
	}

	inv := &models.Invoice{
		Number:       salescommon.NewPreBillNumber(),
		AdvertiserID: c.AdvertiserID,
		CampaignID:   &c.CampaignID,
		Type:         models.InvoiceTypePreBill,
		Status:       models.InvoiceStatusDraft,
		Amount:       total,
		IssueDate:    time.Now(),
		DueDate:      req.DueDate,
		CreatedBy:    user.UserID,
	}
	if err := db.DB(ctx).CreatePreBill(ctx, inv, lines, slotIDs); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Str("invoice", inv.Number).Int("slots", len(slotIDs)).Msg("pre-bill created")
	return inv, nil
}

// RenderInvoicePDF renders an invoice as a PDF document.
func RenderInvoicePDF(ctx context.Context, invoiceID uuid.UUID) ([]byte, apperrors.Error) {
	inv, err := db.DB(ctx).GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	lines, err := db.DB(ctx).GetInvoiceLines(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	adv, err := db.DB(ctx).GetAdvertiser(ctx, inv.AdvertiserID)
	if err != nil {
		return nil, err
	}
	doc, outErr := buildInvoicePDF(inv, adv.Name, lines)
	if outErr != nil {
		log.Ctx(ctx).Error().Err(outErr).Msg("failed to render invoice pdf")
		return nil, ErrSalesManager.Msg("unable to render invoice").Err(outErr)
	}
	return doc, nil
}

func buildInvoicePDF(inv *models.Invoice, advertiserName string, lines []*models.InvoiceLine) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.Number, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	title := "INVOICE"
	if inv.Type == models.InvoiceTypePreBill {
		title = "PRE-BILL INVOICE"
	}
	pdf.CellFormat(0, 12, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Number: "+inv.Number, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Billed to: "+advertiserName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Issue date: "+inv.IssueDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Due date: "+inv.DueDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(100, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Unit", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range lines {
		pdf.CellFormat(100, 8, l.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, decimal.NewFromInt(int64(l.Quantity)).String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, l.UnitAmount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, l.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(155, 9, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 9, inv.Amount.StringFixed(2), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
