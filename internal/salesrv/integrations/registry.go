// Package integrations connects the sales service to external providers:
// hosting platforms for download numbers, video platforms for view counts
// and accounting systems for invoice export. Each provider declares a JSON
// Schema its stored config must satisfy.
package integrations

import (
	"net/http"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
)

const (
	ProviderMegaphone  = "megaphone"
	ProviderYouTube    = "youtube"
	ProviderQuickBooks = "quickbooks"
)

var (
	ErrIntegration apperrors.Error = apperrors.New("integration error").SetStatusCode(http.StatusInternalServerError)

	ErrUnknownProvider = ErrIntegration.New("unknown provider").SetStatusCode(http.StatusBadRequest)
	ErrInvalidConfig   = ErrIntegration.New("config does not match provider schema").SetStatusCode(http.StatusBadRequest)
	ErrSyncFailed      = ErrIntegration.New("sync failed").SetStatusCode(http.StatusBadGateway)
	ErrDisabled        = ErrIntegration.New("integration is disabled").SetStatusCode(http.StatusConflict)
)

const megaphoneConfigSchema = `{
	"type": "object",
	"properties": {
		"api_key": {"type": "string", "minLength": 1},
		"endpoint": {"type": "string", "format": "uri"},
		"network_id": {"type": "string"}
	},
	"required": ["api_key", "endpoint"],
	"additionalProperties": false
}`

const youtubeConfigSchema = `{
	"type": "object",
	"properties": {
		"api_key": {"type": "string", "minLength": 1},
		"endpoint": {"type": "string", "format": "uri"},
		"channel_id": {"type": "string", "minLength": 1}
	},
	"required": ["api_key", "channel_id"],
	"additionalProperties": false
}`

const quickbooksConfigSchema = `{
	"type": "object",
	"properties": {
		"access_token": {"type": "string", "minLength": 1},
		"realm_id": {"type": "string", "minLength": 1},
		"endpoint": {"type": "string", "format": "uri"}
	},
	"required": ["access_token", "realm_id"],
	"additionalProperties": false
}`

// Provider describes one supported external system.
type Provider struct {
	Name        string
	DisplayName string
	schema      *jsonschema.Schema
}

var providers = map[string]*Provider{}

func register(name, displayName, schemaText string) {
	schema := jsonschema.MustCompileString(name+"-config.json", schemaText)
	providers[name] = &Provider{
		Name:        name,
		DisplayName: displayName,
		schema:      schema,
	}
}

func init() {
	register(ProviderMegaphone, "Megaphone", megaphoneConfigSchema)
	register(ProviderYouTube, "YouTube", youtubeConfigSchema)
	register(ProviderQuickBooks, "QuickBooks", quickbooksConfigSchema)
}

// GetProvider looks up a registered provider.
func GetProvider(name string) (*Provider, apperrors.Error) {
	p, ok := providers[name]
	if !ok {
		return nil, ErrUnknownProvider.Msg("unknown provider " + name)
	}
	return p, nil
}

// ListProviders returns the registered provider names.
func ListProviders() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	return names
}

// ValidateConfig checks a config document against the provider's schema.
func (p *Provider) ValidateConfig(config any) apperrors.Error {
	if err := p.schema.Validate(config); err != nil {
		return ErrInvalidConfig.Err(err)
	}
	return nil
}
