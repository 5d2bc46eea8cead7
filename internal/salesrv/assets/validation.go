package assets

import (
	"github.com/go-playground/validator/v10"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/schemavalidator"
)

func validateRegister(req *RegisterRequest) apperrors.Error {
	if req == nil {
		return ErrInvalidAsset.Msg("missing request body")
	}
	if err := schemavalidator.V().Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return ErrInvalidAsset.Msg("invalid value for " + schemavalidator.GetJSONFieldPath(ve[0]))
		}
		return ErrInvalidAsset.Err(err)
	}
	return nil
}
