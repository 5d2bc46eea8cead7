package orgmanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaNameForSlug(t *testing.T) {
	assert.Equal(t, "org_acme", SchemaNameForSlug("acme"))
	assert.Equal(t, "org_blue_mattress_co", SchemaNameForSlug("blue-mattress-co"))
}

func TestOrganizationRequestValidation(t *testing.T) {
	assert.Nil(t, validateStruct(&OrganizationRequest{Name: "Acme", Slug: "acme"}))
	assert.Nil(t, validateStruct(&OrganizationRequest{Name: "Acme", Slug: "acme", Plan: "pro"}))

	err := validateStruct(&OrganizationRequest{Name: "Acme", Slug: "ACME"})
	require.NotNil(t, err)

	err = validateStruct(&OrganizationRequest{Name: "Acme", Slug: "acme", Plan: "free"})
	require.NotNil(t, err)

	err = validateStruct(&OrganizationRequest{Slug: "acme"})
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "invalid value for name")
}

func TestUserRequestValidation(t *testing.T) {
	assert.Nil(t, validateStruct(&UserRequest{
		Email:    "seller@acme.test",
		FullName: "Sam Seller",
		Role:     "sales",
		Password: "a-long-enough-password",
	}))

	err := validateStruct(&UserRequest{
		Email:    "not-an-email",
		FullName: "Sam Seller",
		Role:     "sales",
	})
	require.NotNil(t, err)

	err = validateStruct(&UserRequest{
		Email:    "seller@acme.test",
		FullName: "Sam Seller",
		Role:     "sales",
		Password: "short",
	})
	require.NotNil(t, err)
}

func TestRoleFromRequest(t *testing.T) {
	role, err := roleFromRequest("finance")
	require.Nil(t, err)
	assert.Equal(t, "finance", string(role))

	_, err = roleFromRequest("superuser")
	require.NotNil(t, err)
}
