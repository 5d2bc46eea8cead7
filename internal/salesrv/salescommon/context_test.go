package salescommon

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoleIsValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleSales, RoleFinance, RoleProducer, RoleClient} {
		assert.True(t, r.IsValid(), string(r))
	}
	assert.False(t, Role("root").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestOrgContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, uuid.Nil, GetOrgID(ctx))
	assert.Equal(t, "", GetOrgSchema(ctx))

	orgID := uuid.New()
	ctx = SetOrgIdInContext(ctx, orgID)
	ctx = SetOrgSchemaInContext(ctx, "org_acme")
	assert.Equal(t, orgID, GetOrgID(ctx))
	assert.Equal(t, "org_acme", GetOrgSchema(ctx))
}

func TestUserContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetUserContext(ctx))
	assert.Equal(t, Role(""), GetUserRole(ctx))

	uc := &UserContext{UserID: uuid.New(), Email: "seller@acme.test", Role: RoleSales}
	ctx = SetUserContext(ctx, uc)
	assert.Equal(t, uc, GetUserContext(ctx))
	assert.Equal(t, RoleSales, GetUserRole(ctx))
}
