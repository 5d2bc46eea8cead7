package salesmanager

import (
	"github.com/go-playground/validator/v10"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/schemavalidator"
)

// validateStruct runs the shared validator and collapses field errors into a
// single client-facing message naming the json field.
func validateStruct(s any) apperrors.Error {
	if err := schemavalidator.V().Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return ErrInvalidRequest.Msg("invalid value for " + schemavalidator.GetJSONFieldPath(errs[0]))
		}
		return ErrInvalidRequest
	}
	return nil
}
