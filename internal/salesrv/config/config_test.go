package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "8090", Config().ServerPort)
	assert.Equal(t, "disable", Config().Database.SSLMode)
	assert.Equal(t, "15m", Config().Assets.URLValidity)
}

func TestLoadConfigFile(t *testing.T) {
	content := `
server_port = "9090"
single_org_mode = true
default_org_slug = "acme"

[database]
host = "db.internal"
dbname = "sales"
user = "sales_api"
password = "secret"

[assets]
bucket = "acme-creatives"
region = "us-west-2"
`
	path := filepath.Join(t.TempDir(), "salesrv.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", Config().ServerPort)
	assert.True(t, Config().SingleOrgMode)
	assert.Equal(t, "acme", Config().DefaultOrgSlug)
	assert.Equal(t, "db.internal", Config().Database.Host)
	assert.Contains(t, Dsn(), "dbname=sales")
	assert.Contains(t, DsnURL(), "sales_api:secret@db.internal:5432/sales")

	// restore defaults for other tests
	require.NoError(t, LoadConfig(""))
}

func TestParseTokenDuration(t *testing.T) {
	d, err := ParseTokenDuration("30d")
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, d)

	d, err = ParseTokenDuration("12h")
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, d)

	_, err = ParseTokenDuration("x")
	assert.Error(t, err)
}
