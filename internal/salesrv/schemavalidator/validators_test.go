package schemavalidator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineFixture struct {
	Description string          `json:"description" validate:"required"`
	UnitAmount  decimal.Decimal `json:"unit_amount" validate:"nonneg_decimal"`
}

type orderFixture struct {
	CustomerName string         `json:"customer_name" validate:"required"`
	Lines        []*lineFixture `json:"lines" validate:"dive"`
}

func TestFieldErrorsUseJSONNames(t *testing.T) {
	err := V().Struct(&orderFixture{})
	require.Error(t, err)
	errs := err.(validator.ValidationErrors)
	require.Len(t, errs, 1)
	assert.Equal(t, "customer_name", errs[0].Field())
	assert.Equal(t, "customer_name", GetJSONFieldPath(errs[0]))
}

func TestFieldPathDescendsIntoNestedPayloads(t *testing.T) {
	order := &orderFixture{
		CustomerName: "Acme Coffee",
		Lines: []*lineFixture{
			{Description: "preroll", UnitAmount: decimal.NewFromInt(100)},
			{Description: "midroll", UnitAmount: decimal.NewFromInt(-5)},
		},
	}
	err := V().Struct(order)
	require.Error(t, err)
	errs := err.(validator.ValidationErrors)
	require.Len(t, errs, 1)
	assert.Equal(t, "lines[1].unit_amount", GetJSONFieldPath(errs[0]))
}

func TestNonNegativeDecimal(t *testing.T) {
	assert.NoError(t, V().Var(decimal.Zero, "nonneg_decimal"))
	assert.NoError(t, V().Var(decimal.NewFromInt(42), "nonneg_decimal"))
	assert.Error(t, V().Var(decimal.NewFromInt(-1), "nonneg_decimal"))
}
