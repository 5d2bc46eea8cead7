package integrations

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgtype"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

// IntegrationRequest configures one provider for the org.
type IntegrationRequest struct {
	Provider string          `json:"provider"`
	Config   json.RawMessage `json:"config"`
	Enabled  *bool           `json:"enabled"`
}

// ConfigureIntegration validates the config against the provider's schema
// and stores it.
func ConfigureIntegration(ctx context.Context, req *IntegrationRequest) (*models.Integration, apperrors.Error) {
	provider, err := GetProvider(req.Provider)
	if err != nil {
		return nil, err
	}
	var doc any
	if jsonErr := json.Unmarshal(req.Config, &doc); jsonErr != nil {
		return nil, ErrInvalidConfig.Err(jsonErr)
	}
	if err := provider.ValidateConfig(doc); err != nil {
		return nil, err
	}

	var config pgtype.JSONB
	if setErr := config.Set([]byte(req.Config)); setErr != nil {
		return nil, ErrInvalidConfig.Err(setErr)
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	in := &models.Integration{
		Provider:    provider.Name,
		DisplayName: provider.DisplayName,
		Config:      config,
		Enabled:     enabled,
		SyncStatus:  models.SyncStatusNever,
	}
	if err := db.DB(ctx).UpsertIntegration(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func GetIntegration(ctx context.Context, provider string) (*models.Integration, apperrors.Error) {
	if _, err := GetProvider(provider); err != nil {
		return nil, err
	}
	return db.DB(ctx).GetIntegrationByProvider(ctx, provider)
}

func ListIntegrations(ctx context.Context) ([]*models.Integration, apperrors.Error) {
	return db.DB(ctx).ListIntegrations(ctx)
}
