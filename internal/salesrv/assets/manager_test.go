package assets

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcastflow/podcastflow-pro/internal/salesrv/config"
)

func TestObjectKeyLayout(t *testing.T) {
	require.NoError(t, config.LoadConfig(""))

	orgID := uuid.New()
	campaignID := uuid.New()
	assetID := uuid.New()

	key := objectKey(orgID, campaignID, assetID, "spot-30s.mp3")
	parts := strings.Split(key, "/")
	require.Len(t, parts, 5)
	assert.Equal(t, config.Config().Assets.UploadPrefix, parts[0])
	assert.Equal(t, orgID.String(), parts[1])
	assert.Equal(t, campaignID.String(), parts[2])
	assert.Equal(t, assetID.String(), parts[3])
	assert.Equal(t, "spot-30s.mp3", parts[4])
}

func TestURLValidityDefault(t *testing.T) {
	require.NoError(t, config.LoadConfig(""))
	assert.Equal(t, 15*time.Minute, urlValidity())
}

func TestValidateRegister(t *testing.T) {
	assert.Nil(t, validateRegister(&RegisterRequest{
		CampaignID:  uuid.New(),
		FileName:    "spot-30s.mp3",
		ContentType: "audio/mpeg",
		ByteSize:    1 << 20,
	}))

	assert.NotNil(t, validateRegister(nil))
	assert.NotNil(t, validateRegister(&RegisterRequest{
		FileName:    "spot-30s.mp3",
		ContentType: "audio/mpeg",
		ByteSize:    1,
	}))
	assert.NotNil(t, validateRegister(&RegisterRequest{
		CampaignID:  uuid.New(),
		FileName:    "spot-30s.mp3",
		ContentType: "audio/mpeg",
		ByteSize:    0,
	}))
}
