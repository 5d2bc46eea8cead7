package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AssetStatusPending  = "pending"
	AssetStatusUploaded = "uploaded"
	AssetStatusArchived = "archived"
)

// CreativeAsset is the record for a creative file stored in S3. ObjectKey is
// the S3 key; the file bytes never pass through the API server.
type CreativeAsset struct {
	AssetID     uuid.UUID `db:"asset_id"`
	CampaignID  uuid.UUID `db:"campaign_id"`
	FileName    string    `db:"file_name"`
	ContentType string    `db:"content_type"`
	ByteSize    int64     `db:"byte_size"`
	ObjectKey   string    `db:"object_key"`
	Status      string    `db:"status"`
	UploadedBy  uuid.UUID `db:"uploaded_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
