package postgresql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/dberror"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

const invoiceColumns = "invoice_id, number, advertiser_id, campaign_id, type, status, amount, issue_date, due_date, sent_at, paid_at, created_by, created_at, updated_at"

func scanInvoice(row interface{ Scan(...any) error }) (*models.Invoice, error) {
	inv := &models.Invoice{}
	err := row.Scan(&inv.InvoiceID, &inv.Number, &inv.AdvertiserID, &inv.CampaignID, &inv.Type,
		&inv.Status, &inv.Amount, &inv.IssueDate, &inv.DueDate, &inv.SentAt, &inv.PaidAt,
		&inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt)
	return inv, err
}

func insertInvoiceTx(ctx context.Context, tx *sql.Tx, inv *models.Invoice, lines []*models.InvoiceLine) apperrors.Error {
	query := `
		INSERT INTO invoices (invoice_id, number, advertiser_id, campaign_id, type, status, amount, issue_date, due_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING invoice_id;
	`
	var id uuid.UUID
	err := tx.QueryRowContext(ctx, query,
		inv.InvoiceID, inv.Number, inv.AdvertiserID, inv.CampaignID, inv.Type, inv.Status,
		inv.Amount, inv.IssueDate, inv.DueDate, inv.CreatedBy).Scan(&id)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			switch pgErr.Code {
			case "23505":
				return dberror.ErrAlreadyExists.Msg("invoice number already exists")
			case "23503":
				return dberror.ErrInvalidReference.Msg("advertiser or campaign not found")
			}
		}
		return dberror.ErrDatabase.Err(err)
	}
	for _, line := range lines {
		if line.LineID == uuid.Nil {
			line.LineID = uuid.New()
		}
		line.InvoiceID = id
		_, err := tx.ExecContext(ctx, `
			INSERT INTO invoice_lines (line_id, invoice_id, slot_id, description, quantity, unit_amount, amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`, line.LineID, line.InvoiceID, line.SlotID, line.Description, line.Quantity, line.UnitAmount, line.Amount)
		if err != nil {
			if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
				return dberror.ErrInvalidReference.Msg("invoice line references a missing slot")
			}
			return dberror.ErrDatabase.Err(err)
		}
	}
	return nil
}

func (sm *salesManager) CreateInvoice(ctx context.Context, inv *models.Invoice, lines []*models.InvoiceLine) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	if inv.InvoiceID == uuid.Nil {
		inv.InvoiceID = uuid.New()
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusDraft
	}
	tx, err := sm.conn().BeginTx(ctx, nil)
	if err != nil {
		return dberror.ErrDatabase.Err(err)
	}
	defer tx.Rollback()

	if dbErr := insertInvoiceTx(ctx, tx, inv, lines); dbErr != nil {
		log.Ctx(ctx).Error().Err(dbErr).Msg("failed to insert invoice")
		return dbErr
	}
	if err := tx.Commit(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to commit invoice")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// CreatePreBill writes a prebill invoice and marks the covered slots billed
// in the same transaction. A slot that is no longer billable aborts the
// whole pre-bill.
func (sm *salesManager) CreatePreBill(ctx context.Context, inv *models.Invoice, lines []*models.InvoiceLine, slotIDs []uuid.UUID) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	if inv.InvoiceID == uuid.Nil {
		inv.InvoiceID = uuid.New()
	}
	inv.Type = models.InvoiceTypePreBill
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusDraft
	}
	tx, err := sm.conn().BeginTx(ctx, nil)
	if err != nil {
		return dberror.ErrDatabase.Err(err)
	}
	defer tx.Rollback()

	if dbErr := insertInvoiceTx(ctx, tx, inv, lines); dbErr != nil {
		log.Ctx(ctx).Error().Err(dbErr).Msg("failed to insert pre-bill invoice")
		return dbErr
	}
	for _, slotID := range slotIDs {
		result, err := tx.ExecContext(ctx, `
			UPDATE schedule_slots SET status = 'billed', updated_at = now()
			WHERE slot_id = $1 AND status IN ('booked', 'aired');
		`, slotID)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to mark slot billed")
			return dberror.ErrDatabase.Err(err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return dberror.ErrInvalidTransition.Msg("slot is not billable")
		}
	}
	if err := tx.Commit(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to commit pre-bill")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (sm *salesManager) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	inv, err := scanInvoice(sm.conn().QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1;`, invoiceID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("invoice not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve invoice")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return inv, nil
}

func (sm *salesManager) GetInvoiceLines(ctx context.Context, invoiceID uuid.UUID) ([]*models.InvoiceLine, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	rows, err := sm.conn().QueryContext(ctx, `
		SELECT line_id, invoice_id, slot_id, description, quantity, unit_amount, amount
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY line_id;
	`, invoiceID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list invoice lines")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.InvoiceLine
	for rows.Next() {
		l := &models.InvoiceLine{}
		if err := rows.Scan(&l.LineID, &l.InvoiceID, &l.SlotID, &l.Description, &l.Quantity, &l.UnitAmount, &l.Amount); err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return out, nil
}

func (sm *salesManager) ListInvoices(ctx context.Context, status string, advertiserID uuid.UUID, issuedFrom, issuedTo time.Time) ([]*models.Invoice, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1 = '' OR status = $1)
		  AND ($2::uuid IS NULL OR advertiser_id = $2)
		  AND ($3::date IS NULL OR issue_date >= $3)
		  AND ($4::date IS NULL OR issue_date <= $4)
		ORDER BY issue_date DESC, number;
	`
	var advParam, fromParam, toParam any
	if advertiserID != uuid.Nil {
		advParam = advertiserID
	}
	if !issuedFrom.IsZero() {
		fromParam = issuedFrom
	}
	if !issuedTo.IsZero() {
		toParam = issuedTo
	}
	rows, err := sm.conn().QueryContext(ctx, query, status, advParam, fromParam, toParam)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list invoices")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return out, nil
}

// UpdateInvoiceStatus records the transition and stamps sent_at or paid_at
// when the target status calls for it. Transition validity is the caller's
// business; the store only refuses writes to missing invoices.
func (sm *salesManager) UpdateInvoiceStatus(ctx context.Context, invoiceID uuid.UUID, status string, at time.Time) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	query := `
		UPDATE invoices
		SET status = $1,
		    sent_at = CASE WHEN $1 = 'sent' THEN $2 ELSE sent_at END,
		    paid_at = CASE WHEN $1 = 'paid' THEN $2 ELSE paid_at END,
		    updated_at = now()
		WHERE invoice_id = $3
		RETURNING invoice_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query, status, at, invoiceID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("invoice not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update invoice status")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// ReleasePreBillSlots marks a voided pre-bill's billed slots released so a
// later pre-bill can pick them up again.
func (sm *salesManager) ReleasePreBillSlots(ctx context.Context, invoiceID uuid.UUID) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	query := `
		UPDATE schedule_slots
		SET status = 'released', updated_at = now()
		WHERE status = 'billed'
		  AND slot_id IN (SELECT slot_id FROM invoice_lines WHERE invoice_id = $1 AND slot_id IS NOT NULL);
	`
	if _, err := sm.conn().ExecContext(ctx, query, invoiceID); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to release pre-bill slots")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}
