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

const slotColumns = "slot_id, campaign_id, show_id, episode_id, slot_type, air_date, rate, status, created_at, updated_at"

func scanSlot(row interface{ Scan(...any) error }) (*models.ScheduleSlot, error) {
	s := &models.ScheduleSlot{}
	err := row.Scan(&s.SlotID, &s.CampaignID, &s.ShowID, &s.EpisodeID, &s.SlotType,
		&s.AirDate, &s.Rate, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (sm *salesManager) CreateScheduleSlot(ctx context.Context, slot *models.ScheduleSlot) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	if slot.SlotID == uuid.Nil {
		slot.SlotID = uuid.New()
	}
	if slot.Status == "" {
		slot.Status = models.SlotStatusBooked
	}
	query := `
		INSERT INTO schedule_slots (slot_id, campaign_id, show_id, episode_id, slot_type, air_date, rate, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING slot_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		slot.SlotID, slot.CampaignID, slot.ShowID, slot.EpisodeID,
		slot.SlotType, slot.AirDate, slot.Rate, slot.Status).Scan(&id)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			switch pgErr.Code {
			case "23503":
				return dberror.ErrInvalidReference.Msg("campaign, show or episode not found")
			case "23514":
				return dberror.ErrInvalidInput.Msg("invalid slot values")
			}
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert schedule slot")
		return dberror.ErrDatabase.Err(err)
	}
	slot.SlotID = id
	return nil
}

func (sm *salesManager) GetScheduleSlot(ctx context.Context, slotID uuid.UUID) (*models.ScheduleSlot, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	s, err := scanSlot(sm.conn().QueryRowContext(ctx,
		`SELECT `+slotColumns+` FROM schedule_slots WHERE slot_id = $1;`, slotID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("schedule slot not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve schedule slot")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return s, nil
}

// UpdateScheduleSlot rejects writes to billed slots. A billed slot only
// changes through pre-bill void, which releases it.
func (sm *salesManager) UpdateScheduleSlot(ctx context.Context, slot *models.ScheduleSlot) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	query := `
		UPDATE schedule_slots
		SET show_id = $1, episode_id = $2, slot_type = $3, air_date = $4, rate = $5, status = $6, updated_at = now()
		WHERE slot_id = $7 AND status <> 'billed'
		RETURNING slot_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		slot.ShowID, slot.EpisodeID, slot.SlotType, slot.AirDate, slot.Rate, slot.Status, slot.SlotID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			// Distinguish missing from billed for the caller.
			var status string
			sErr := sm.conn().QueryRowContext(ctx,
				`SELECT status FROM schedule_slots WHERE slot_id = $1;`, slot.SlotID).Scan(&status)
			if sErr == nil && status == models.SlotStatusBilled {
				return dberror.ErrImmutableRecord.Msg("slot is billed")
			}
			return dberror.ErrNotFound.Msg("schedule slot not found")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidReference.Msg("show or episode not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update schedule slot")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (sm *salesManager) DeleteScheduleSlot(ctx context.Context, slotID uuid.UUID) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	result, err := sm.conn().ExecContext(ctx,
		`DELETE FROM schedule_slots WHERE slot_id = $1 AND status <> 'billed'`, slotID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete schedule slot")
		return dberror.ErrDatabase.Err(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		var status string
		sErr := sm.conn().QueryRowContext(ctx,
			`SELECT status FROM schedule_slots WHERE slot_id = $1;`, slotID).Scan(&status)
		if sErr == nil && status == models.SlotStatusBilled {
			return dberror.ErrImmutableRecord.Msg("slot is billed")
		}
	}
	return nil
}

func (sm *salesManager) ListSlotsByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*models.ScheduleSlot, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	return sm.listSlots(ctx,
		`SELECT `+slotColumns+` FROM schedule_slots WHERE campaign_id = $1 ORDER BY air_date;`, campaignID)
}

// ListUnbilledSlots returns the campaign's booked, aired and released slots,
// the ones pre-bill may pick up.
func (sm *salesManager) ListUnbilledSlots(ctx context.Context, campaignID uuid.UUID) ([]*models.ScheduleSlot, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	return sm.listSlots(ctx,
		`SELECT `+slotColumns+` FROM schedule_slots WHERE campaign_id = $1 AND status IN ('booked', 'aired', 'released') ORDER BY air_date;`,
		campaignID)
}

func (sm *salesManager) listSlots(ctx context.Context, query string, args ...any) ([]*models.ScheduleSlot, apperrors.Error) {
	rows, err := sm.conn().QueryContext(ctx, query, args...)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list schedule slots")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.ScheduleSlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return out, nil
}
