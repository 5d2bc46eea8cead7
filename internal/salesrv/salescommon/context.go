// Package salescommon provides context plumbing shared across the sales
// service: the authenticated organization and user, public document IDs, and
// password hashing.
package salescommon

import (
	"context"

	"github.com/google/uuid"
)

// Role is the access role of an authenticated user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSales    Role = "sales"
	RoleFinance  Role = "finance"
	RoleProducer Role = "producer"
	RoleClient   Role = "client"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSales, RoleFinance, RoleProducer, RoleClient:
		return true
	}
	return false
}

// ctxKeyType represents the type for all context keys
type ctxKeyType string

const (
	ctxOrgIdKey     ctxKeyType = "SalesOrgId"
	ctxOrgSchemaKey ctxKeyType = "SalesOrgSchema"
	ctxUserKey      ctxKeyType = "SalesUserContext"
)

// UserContext represents the authenticated principal on a request.
type UserContext struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// SetOrgIdInContext sets the organization ID in the provided context.
func SetOrgIdInContext(ctx context.Context, orgID uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxOrgIdKey, orgID)
}

// GetOrgID retrieves the organization ID from the provided context.
func GetOrgID(ctx context.Context) uuid.UUID {
	if orgID, ok := ctx.Value(ctxOrgIdKey).(uuid.UUID); ok {
		return orgID
	}
	return uuid.Nil
}

// SetOrgSchemaInContext sets the organization's database schema name.
func SetOrgSchemaInContext(ctx context.Context, schema string) context.Context {
	return context.WithValue(ctx, ctxOrgSchemaKey, schema)
}

// GetOrgSchema retrieves the organization's database schema name, or "".
func GetOrgSchema(ctx context.Context) string {
	if schema, ok := ctx.Value(ctxOrgSchemaKey).(string); ok {
		return schema
	}
	return ""
}

// SetUserContext sets the authenticated user in the provided context.
func SetUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, ctxUserKey, user)
}

// GetUserContext retrieves the authenticated user, or nil.
func GetUserContext(ctx context.Context) *UserContext {
	if user, ok := ctx.Value(ctxUserKey).(*UserContext); ok {
		return user
	}
	return nil
}

// GetUserRole returns the role of the authenticated user, or "".
func GetUserRole(ctx context.Context) Role {
	if user := GetUserContext(ctx); user != nil {
		return user.Role
	}
	return ""
}
