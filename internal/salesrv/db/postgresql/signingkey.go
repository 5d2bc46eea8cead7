package postgresql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/dberror"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

func (mm *metadataManager) CreateSigningKey(ctx context.Context, key *models.SigningKey) apperrors.Error {
	if key.KeyID == uuid.Nil {
		key.KeyID = uuid.New()
	}
	query := `
		INSERT INTO signing_keys (key_id, public_key, private_key, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING key_id;
	`
	var id uuid.UUID
	err := mm.conn().QueryRowContext(ctx, query, key.KeyID, key.PublicKey, key.PrivateKey, key.IsActive).Scan(&id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert signing key")
		return dberror.ErrDatabase.Err(err)
	}
	key.KeyID = id
	return nil
}

func (mm *metadataManager) GetActiveSigningKey(ctx context.Context) (*models.SigningKey, apperrors.Error) {
	query := `
		SELECT key_id, public_key, private_key, is_active, created_at, updated_at
		FROM signing_keys
		WHERE is_active = true;
	`
	key := &models.SigningKey{}
	err := mm.conn().QueryRowContext(ctx, query).
		Scan(&key.KeyID, &key.PublicKey, &key.PrivateKey, &key.IsActive, &key.CreatedAt, &key.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("no active signing key")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve signing key")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return key, nil
}

func (mm *metadataManager) UpdateSigningKeyActive(ctx context.Context, keyID uuid.UUID, isActive bool) apperrors.Error {
	query := `UPDATE signing_keys SET is_active = $1, updated_at = now() WHERE key_id = $2 RETURNING key_id;`
	var id uuid.UUID
	err := mm.conn().QueryRowContext(ctx, query, isActive, keyID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("signing key not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update signing key")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}
