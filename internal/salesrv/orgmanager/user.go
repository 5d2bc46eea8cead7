package orgmanager

import (
	"context"

	"github.com/google/uuid"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

// UserRequest creates or updates a user within an organization.
type UserRequest struct {
	Email    string `json:"email" validate:"required,email,max=256"`
	FullName string `json:"full_name" validate:"required,max=128"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password" validate:"omitempty,min=12,max=128"`
	IsActive *bool  `json:"is_active"`
}

func roleFromRequest(s string) (salescommon.Role, apperrors.Error) {
	role := salescommon.Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRequest.Msg("unknown role: " + s)
	}
	return role, nil
}

// CreateUser adds a user to the given organization. Password is required on
// create.
func CreateUser(ctx context.Context, orgID uuid.UUID, req *UserRequest) (*models.User, apperrors.Error) {
	if req == nil {
		return nil, ErrInvalidRequest.Msg("missing request body")
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, ErrInvalidRequest.Msg("password is required")
	}
	role, err := roleFromRequest(req.Role)
	if err != nil {
		return nil, err
	}
	hash, herr := salescommon.HashPassword(req.Password)
	if herr != nil {
		return nil, ErrOrgManager.Err(herr)
	}
	user := &models.User{
		UserID:       uuid.New(),
		OrgID:        orgID,
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         role,
		PasswordHash: hash,
		IsActive:     true,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := db.DB(ctx).CreateUser(ctx, user); err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func GetUser(ctx context.Context, userID uuid.UUID) (*models.User, apperrors.Error) {
	user, err := db.DB(ctx).GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func ListUsers(ctx context.Context, orgID uuid.UUID) ([]*models.User, apperrors.Error) {
	users, err := db.DB(ctx).ListUsers(ctx, orgID)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}

// UpdateUser changes profile fields, role, active flag, and optionally the
// password.
func UpdateUser(ctx context.Context, userID uuid.UUID, req *UserRequest) (*models.User, apperrors.Error) {
	if req == nil {
		return nil, ErrInvalidRequest.Msg("missing request body")
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	role, err := roleFromRequest(req.Role)
	if err != nil {
		return nil, err
	}
	user, err := db.DB(ctx).GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Email = req.Email
	user.FullName = req.FullName
	user.Role = role
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != "" {
		hash, herr := salescommon.HashPassword(req.Password)
		if herr != nil {
			return nil, ErrOrgManager.Err(herr)
		}
		user.PasswordHash = hash
	}
	if err := db.DB(ctx).UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func DeleteUser(ctx context.Context, userID uuid.UUID) apperrors.Error {
	return db.DB(ctx).DeleteUser(ctx, userID)
}
