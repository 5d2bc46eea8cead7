package integrations

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, s string) any {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(s), &doc))
	return doc
}

func TestListProviders(t *testing.T) {
	names := ListProviders()
	assert.Len(t, names, 3)
	assert.Contains(t, names, ProviderMegaphone)
	assert.Contains(t, names, ProviderYouTube)
	assert.Contains(t, names, ProviderQuickBooks)
}

func TestGetProviderUnknown(t *testing.T) {
	_, err := GetProvider("spotify")
	require.NotNil(t, err)
	assert.True(t, err.Is(ErrUnknownProvider))
}

func TestMegaphoneConfigSchema(t *testing.T) {
	p, err := GetProvider(ProviderMegaphone)
	require.Nil(t, err)

	good := mustDoc(t, `{"api_key":"mk-123","endpoint":"https://api.megaphone.fm"}`)
	assert.Nil(t, p.ValidateConfig(good))

	missingKey := mustDoc(t, `{"endpoint":"https://api.megaphone.fm"}`)
	assert.NotNil(t, p.ValidateConfig(missingKey))

	extraField := mustDoc(t, `{"api_key":"mk","endpoint":"https://x.test","password":"nope"}`)
	assert.NotNil(t, p.ValidateConfig(extraField))
}

func TestYouTubeConfigSchema(t *testing.T) {
	p, err := GetProvider(ProviderYouTube)
	require.Nil(t, err)

	good := mustDoc(t, `{"api_key":"yt-key","channel_id":"UC123"}`)
	assert.Nil(t, p.ValidateConfig(good))

	missingChannel := mustDoc(t, `{"api_key":"yt-key"}`)
	assert.NotNil(t, p.ValidateConfig(missingChannel))
}

func TestQuickBooksConfigSchema(t *testing.T) {
	p, err := GetProvider(ProviderQuickBooks)
	require.Nil(t, err)

	good := mustDoc(t, `{"access_token":"tok","realm_id":"42"}`)
	assert.Nil(t, p.ValidateConfig(good))

	emptyToken := mustDoc(t, `{"access_token":"","realm_id":"42"}`)
	assert.NotNil(t, p.ValidateConfig(emptyToken))
}
