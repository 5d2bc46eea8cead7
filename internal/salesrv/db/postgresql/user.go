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

const userColumns = "user_id, org_id, email, full_name, role, password_hash, is_active, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.UserID, &u.OrgID, &u.Email, &u.FullName, &u.Role, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (mm *metadataManager) CreateUser(ctx context.Context, user *models.User) apperrors.Error {
	if user.UserID == uuid.Nil {
		user.UserID = uuid.New()
	}
	query := `
		INSERT INTO users (user_id, org_id, email, full_name, role, password_hash, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (org_id, email) DO NOTHING
		RETURNING user_id;
	`
	var id uuid.UUID
	err := mm.conn().QueryRowContext(ctx, query,
		user.UserID, user.OrgID, user.Email, user.FullName, user.Role, user.PasswordHash, user.IsActive).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("email", user.Email).Msg("user already exists")
			return dberror.ErrAlreadyExists.Msg("user already exists")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidReference.Msg("organization not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert user")
		return dberror.ErrDatabase.Err(err)
	}
	user.UserID = id
	return nil
}

func (mm *metadataManager) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, apperrors.Error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	u, err := scanUser(mm.conn().QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("user not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve user")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return u, nil
}

func (mm *metadataManager) GetUserByEmail(ctx context.Context, orgID uuid.UUID, email string) (*models.User, apperrors.Error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE org_id = $1 AND email = $2;`
	u, err := scanUser(mm.conn().QueryRowContext(ctx, query, orgID, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("user not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve user")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return u, nil
}

func (mm *metadataManager) ListUsers(ctx context.Context, orgID uuid.UUID) ([]*models.User, apperrors.Error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE org_id = $1 ORDER BY email;`
	rows, err := mm.conn().QueryContext(ctx, query, orgID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list users")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return users, nil
}

func (mm *metadataManager) UpdateUser(ctx context.Context, user *models.User) apperrors.Error {
	query := `
		UPDATE users
		SET email = $1, full_name = $2, role = $3, is_active = $4, password_hash = $5, updated_at = now()
		WHERE user_id = $6
		RETURNING user_id;
	`
	var id uuid.UUID
	err := mm.conn().QueryRowContext(ctx, query, user.Email, user.FullName, user.Role, user.IsActive, user.PasswordHash, user.UserID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.Msg("user not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to update user")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (mm *metadataManager) DeleteUser(ctx context.Context, userID uuid.UUID) apperrors.Error {
	result, err := mm.conn().ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to delete user")
		return dberror.ErrDatabase.Err(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		log.Ctx(ctx).Info().Str("user_id", userID.String()).Msg("user not found")
	}
	return nil
}
