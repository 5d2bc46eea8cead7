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

// Agencies

const agencyColumns = "agency_id, name, contact_email, contact_phone, is_active, created_at, updated_at"

func scanAgency(row interface{ Scan(...any) error }) (*models.Agency, error) {
	a := &models.Agency{}
	err := row.Scan(&a.AgencyID, &a.Name, &a.ContactEmail, &a.ContactPhone, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (sm *salesManager) CreateAgency(ctx context.Context, agency *models.Agency) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	if agency.AgencyID == uuid.Nil {
		agency.AgencyID = uuid.New()
	}
	query := `
		INSERT INTO agencies (agency_id, name, contact_email, contact_phone, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING agency_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		agency.AgencyID, agency.Name, agency.ContactEmail, agency.ContactPhone, agency.IsActive).Scan(&id)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return dberror.ErrAlreadyExists.Msg("agency already exists")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert agency")
		return dberror.ErrDatabase.Err(err)
	}
	agency.AgencyID = id
	return nil
}

func (sm *salesManager) GetAgency(ctx context.Context, agencyID uuid.UUID) (*models.Agency, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	a, err := scanAgency(sm.conn().QueryRowContext(ctx,
		`SELECT `+agencyColumns+` FROM agencies WHERE agency_id = $1;`, agencyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("agency not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve agency")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return a, nil
}

func (sm *salesManager) UpdateAgency(ctx context.Context, agency *models.Agency) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	query := `
		UPDATE agencies
		SET name = $1, contact_email = $2, contact_phone = $3, is_active = $4, updated_at = now()
		WHERE agency_id = $5
		RETURNING agency_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		agency.Name, agency.ContactEmail, agency.ContactPhone, agency.IsActive, agency.AgencyID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("agency not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update agency")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (sm *salesManager) DeleteAgency(ctx context.Context, agencyID uuid.UUID) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	_, err := sm.conn().ExecContext(ctx, `DELETE FROM agencies WHERE agency_id = $1`, agencyID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrConstraintViolation.Msg("agency has advertisers")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete agency")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (sm *salesManager) ListAgencies(ctx context.Context) ([]*models.Agency, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	rows, err := sm.conn().QueryContext(ctx, `SELECT `+agencyColumns+` FROM agencies ORDER BY name;`)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list agencies")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.Agency
	for rows.Next() {
		a, err := scanAgency(rows)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return out, nil
}

// Advertisers

const advertiserColumns = "advertiser_id, name, agency_id, seller_id, contact_email, industry, is_active, created_at, updated_at"

func scanAdvertiser(row interface{ Scan(...any) error }) (*models.Advertiser, error) {
	a := &models.Advertiser{}
	err := row.Scan(&a.AdvertiserID, &a.Name, &a.AgencyID, &a.SellerID, &a.ContactEmail, &a.Industry, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (sm *salesManager) CreateAdvertiser(ctx context.Context, adv *models.Advertiser) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	if adv.AdvertiserID == uuid.Nil {
		adv.AdvertiserID = uuid.New()
	}
	query := `
		INSERT INTO advertisers (advertiser_id, name, agency_id, seller_id, contact_email, industry, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING advertiser_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		adv.AdvertiserID, adv.Name, adv.AgencyID, adv.SellerID, adv.ContactEmail, adv.Industry, adv.IsActive).Scan(&id)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidReference.Msg("agency not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert advertiser")
		return dberror.ErrDatabase.Err(err)
	}
	adv.AdvertiserID = id
	return nil
}

func (sm *salesManager) GetAdvertiser(ctx context.Context, advertiserID uuid.UUID) (*models.Advertiser, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	a, err := scanAdvertiser(sm.conn().QueryRowContext(ctx,
		`SELECT `+advertiserColumns+` FROM advertisers WHERE advertiser_id = $1;`, advertiserID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("advertiser not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve advertiser")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return a, nil
}

func (sm *salesManager) UpdateAdvertiser(ctx context.Context, adv *models.Advertiser) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	query := `
		UPDATE advertisers
		SET name = $1, agency_id = $2, seller_id = $3, contact_email = $4, industry = $5, is_active = $6, updated_at = now()
		WHERE advertiser_id = $7
		RETURNING advertiser_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		adv.Name, adv.AgencyID, adv.SellerID, adv.ContactEmail, adv.Industry, adv.IsActive, adv.AdvertiserID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("advertiser not found")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidReference.Msg("agency not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update advertiser")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (sm *salesManager) DeleteAdvertiser(ctx context.Context, advertiserID uuid.UUID) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	_, err := sm.conn().ExecContext(ctx, `DELETE FROM advertisers WHERE advertiser_id = $1`, advertiserID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrConstraintViolation.Msg("advertiser has campaigns")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete advertiser")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (sm *salesManager) ListAdvertisers(ctx context.Context) ([]*models.Advertiser, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	rows, err := sm.conn().QueryContext(ctx, `SELECT `+advertiserColumns+` FROM advertisers ORDER BY name;`)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list advertisers")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.Advertiser
	for rows.Next() {
		a, err := scanAdvertiser(rows)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return out, nil
}

// ListAdvertiserLinks returns the hierarchy edges the budget roll-up needs.
func (sm *salesManager) ListAdvertiserLinks(ctx context.Context) ([]*models.AdvertiserLink, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	rows, err := sm.conn().QueryContext(ctx,
		`SELECT advertiser_id, agency_id, seller_id, name FROM advertisers WHERE is_active = true;`)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list advertiser links")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.AdvertiserLink
	for rows.Next() {
		l := &models.AdvertiserLink{}
		if err := rows.Scan(&l.AdvertiserID, &l.AgencyID, &l.SellerID, &l.Name); err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return out, nil
}

// Shows

const showColumns = "show_id, name, description, host, category, is_active, created_at, updated_at"

func scanShow(row interface{ Scan(...any) error }) (*models.Show, error) {
	s := &models.Show{}
	err := row.Scan(&s.ShowID, &s.Name, &s.Description, &s.Host, &s.Category, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (sm *salesManager) CreateShow(ctx context.Context, show *models.Show) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	if show.ShowID == uuid.Nil {
		show.ShowID = uuid.New()
	}
	query := `
		INSERT INTO shows (show_id, name, description, host, category, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING show_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		show.ShowID, show.Name, show.Description, show.Host, show.Category, show.IsActive).Scan(&id)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return dberror.ErrAlreadyExists.Msg("show already exists")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert show")
		return dberror.ErrDatabase.Err(err)
	}
	show.ShowID = id
	return nil
}

func (sm *salesManager) GetShow(ctx context.Context, showID uuid.UUID) (*models.Show, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	s, err := scanShow(sm.conn().QueryRowContext(ctx,
		`SELECT `+showColumns+` FROM shows WHERE show_id = $1;`, showID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("show not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve show")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return s, nil
}

func (sm *salesManager) UpdateShow(ctx context.Context, show *models.Show) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	query := `
		UPDATE shows
		SET name = $1, description = $2, host = $3, category = $4, is_active = $5, updated_at = now()
		WHERE show_id = $6
		RETURNING show_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		show.Name, show.Description, show.Host, show.Category, show.IsActive, show.ShowID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("show not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update show")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (sm *salesManager) DeleteShow(ctx context.Context, showID uuid.UUID) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	_, err := sm.conn().ExecContext(ctx, `DELETE FROM shows WHERE show_id = $1`, showID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrConstraintViolation.Msg("show has episodes or placements")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete show")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (sm *salesManager) ListShows(ctx context.Context) ([]*models.Show, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	rows, err := sm.conn().QueryContext(ctx, `SELECT `+showColumns+` FROM shows ORDER BY name;`)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list shows")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.Show
	for rows.Next() {
		s, err := scanShow(rows)
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

// Episodes

const episodeColumns = "episode_id, show_id, title, episode_number, air_date, duration_secs, downloads, created_at, updated_at"

func scanEpisode(row interface{ Scan(...any) error }) (*models.Episode, error) {
	e := &models.Episode{}
	err := row.Scan(&e.EpisodeID, &e.ShowID, &e.Title, &e.EpisodeNumber, &e.AirDate, &e.DurationSecs, &e.Downloads, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (sm *salesManager) CreateEpisode(ctx context.Context, ep *models.Episode) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	if ep.EpisodeID == uuid.Nil {
		ep.EpisodeID = uuid.New()
	}
	query := `
		INSERT INTO episodes (episode_id, show_id, title, episode_number, air_date, duration_secs)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (show_id, episode_number) DO NOTHING
		RETURNING episode_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		ep.EpisodeID, ep.ShowID, ep.Title, ep.EpisodeNumber, ep.AirDate, ep.DurationSecs).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("episode number already exists for show")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidReference.Msg("show not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert episode")
		return dberror.ErrDatabase.Err(err)
	}
	ep.EpisodeID = id
	return nil
}

func (sm *salesManager) GetEpisode(ctx context.Context, episodeID uuid.UUID) (*models.Episode, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	e, err := scanEpisode(sm.conn().QueryRowContext(ctx,
		`SELECT `+episodeColumns+` FROM episodes WHERE episode_id = $1;`, episodeID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("episode not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve episode")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return e, nil
}

func (sm *salesManager) UpdateEpisode(ctx context.Context, ep *models.Episode) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	query := `
		UPDATE episodes
		SET title = $1, episode_number = $2, air_date = $3, duration_secs = $4, updated_at = now()
		WHERE episode_id = $5
		RETURNING episode_id;
	`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query,
		ep.Title, ep.EpisodeNumber, ep.AirDate, ep.DurationSecs, ep.EpisodeID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("episode not found")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return dberror.ErrAlreadyExists.Msg("episode number already exists for show")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update episode")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (sm *salesManager) DeleteEpisode(ctx context.Context, episodeID uuid.UUID) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	_, err := sm.conn().ExecContext(ctx, `DELETE FROM episodes WHERE episode_id = $1`, episodeID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete episode")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (sm *salesManager) ListEpisodesByShow(ctx context.Context, showID uuid.UUID) ([]*models.Episode, apperrors.Error) {
	if err := sm.requireOrgScope(ctx); err != nil {
		return nil, err
	}
	rows, err := sm.conn().QueryContext(ctx,
		`SELECT `+episodeColumns+` FROM episodes WHERE show_id = $1 ORDER BY episode_number;`, showID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list episodes")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var out []*models.Episode
	for rows.Next() {
		e, err := scanEpisode(rows)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return out, nil
}

func (sm *salesManager) UpdateEpisodeDownloads(ctx context.Context, episodeID uuid.UUID, downloads int64) apperrors.Error {
	if err := sm.requireOrgScope(ctx); err != nil {
		return err
	}
	query := `UPDATE episodes SET downloads = $1, updated_at = now() WHERE episode_id = $2 RETURNING episode_id;`
	var id uuid.UUID
	err := sm.conn().QueryRowContext(ctx, query, downloads, episodeID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("episode not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update episode downloads")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}
