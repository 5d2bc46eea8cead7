package postgresql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/dberror"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

const budgetColumns = "entry_id, entity_type, entity_id, year, month, budget_amount, actual_amount, previous_year_amount, notes, created_at, updated_at"

func scanBudgetEntry(row interface{ Scan(...any) error }) (*models.BudgetEntry, error) {
	b := &models.BudgetEntry{}
	err := row.Scan(&b.EntryID, &b.EntityType, &b.EntityID, &b.Year, &b.Month,
		&b.BudgetAmount, &b.ActualAmount, &b.PreviousYearAmount, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// UpsertBudgetEntry writes the entry keyed by (entity_type, entity_id, year,
// month). An existing row keeps its entry_id.
func (sm *salesManager) UpsertBudgetEntry(ctx context.Context, entry *models.BudgetEntry) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	if entry.EntryID == uuid.Nil {
		entry.EntryID = uuid.New()
	}
	query := `
		INSERT INTO budget_entries (entry_id, entity_type, entity_id, year, month, budget_amount, actual_amount, previous_year_amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (entity_type, entity_id, year, month)
		DO UPDATE SET budget_amount = EXCLUDED.budget_amount,
		              actual_amount = EXCLUDED.actual_amount,
		              previous_year_amount = EXCLUDED.previous_year_amount,
		              notes = EXCLUDED.notes,
		              updated_at = now()
		RETURNING entry_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		entry.EntryID, entry.EntityType, entry.EntityID, entry.Year, entry.Month,
		entry.BudgetAmount, entry.ActualAmount, entry.PreviousYearAmount, entry.Notes).Scan(&id)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23514" {
			return dberror.ErrInvalidInput.Msg("invalid budget entry values")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to upsert budget entry")
		return dberror.ErrDatabase.Err(err)
	}
	entry.EntryID = id
	return nil
}

func (sm *salesManager) GetBudgetEntry(ctx context.Context, entryID uuid.UUID) (*models.BudgetEntry, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	b, err := scanBudgetEntry(sm.conn().QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budget_entries WHERE entry_id = $1;`, entryID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("budget entry not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve budget entry")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return b, nil
}

func (sm *salesManager) DeleteBudgetEntry(ctx context.Context, entryID uuid.UUID) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	_, err := sm.conn().ExecContext(ctx, `DELETE FROM budget_entries WHERE entry_id = $1`, entryID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete budget entry")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

// ListBudgetEntries returns the entries for a year. month = 0 returns the
// whole year.
func (sm *salesManager) ListBudgetEntries(ctx context.Context, year, month int) ([]*models.BudgetEntry, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	query := `
		SELECT ` + budgetColumns + `
		FROM budget_entries
		WHERE year = $1 AND ($2 = 0 OR month = $2)
		ORDER BY entity_type, entity_id, month;
	`
	rows, err := sm.conn().QueryContext(ctx, query, year, month)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list budget entries")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.BudgetEntry
	for rows.Next() {
		b, err := scanBudgetEntry(rows)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return out, nil
}
