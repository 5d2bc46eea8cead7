package assets

import (
	"context"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/config"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

// RegisterRequest describes a creative file a client intends to upload.
type RegisterRequest struct {
	CampaignID  uuid.UUID `json:"campaign_id" validate:"required"`
	FileName    string    `json:"file_name" validate:"required,max=255"`
	ContentType string    `json:"content_type" validate:"required,max=128"`
	ByteSize    int64     `json:"byte_size" validate:"required,gt=0"`
}

// UploadGrant pairs the created asset record with a presigned PUT URL.
type UploadGrant struct {
	Asset     *models.CreativeAsset `json:"asset"`
	UploadURL string                `json:"upload_url"`
	ExpiresAt time.Time             `json:"expires_at"`
}

// DownloadGrant carries a presigned GET URL for an uploaded asset.
type DownloadGrant struct {
	AssetID     uuid.UUID `json:"asset_id"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func urlValidity() time.Duration {
	d, err := config.ParseTokenDuration(config.Config().Assets.URLValidity)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

func objectKey(orgID, campaignID, assetID uuid.UUID, fileName string) string {
	return path.Join(config.Config().Assets.UploadPrefix,
		orgID.String(), campaignID.String(), assetID.String(), fileName)
}

// RegisterAsset records the asset as pending and returns a presigned upload
// URL. The record flips to uploaded only after the client confirms.
func RegisterAsset(ctx context.Context, req *RegisterRequest) (*UploadGrant, apperrors.Error) {
	if err := validateRegister(req); err != nil {
		return nil, err
	}
	if _, err := db.DB(ctx).GetCampaign(ctx, req.CampaignID); err != nil {
		return nil, err
	}
	uc := salescommon.GetUserContext(ctx)
	if uc == nil {
		return nil, ErrInvalidAsset.Msg("missing user context")
	}
	sg, err := getSigner()
	if err != nil {
		return nil, err
	}

	a := &models.CreativeAsset{
		AssetID:     uuid.New(),
		CampaignID:  req.CampaignID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		ByteSize:    req.ByteSize,
		Status:      models.AssetStatusPending,
		UploadedBy:  uc.UserID,
	}
	a.ObjectKey = objectKey(salescommon.GetOrgID(ctx), a.CampaignID, a.AssetID, a.FileName)

	validity := urlValidity()
	url, err := sg.SignUpload(a.ObjectKey, a.ContentType, validity)
	if err != nil {
		return nil, err
	}
	if err := db.DB(ctx).CreateAsset(ctx, a); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().
		Str("asset_id", a.AssetID.String()).
		Str("campaign_id", a.CampaignID.String()).
		Msg("registered creative asset")
	return &UploadGrant{Asset: a, UploadURL: url, ExpiresAt: time.Now().Add(validity)}, nil
}

// ConfirmUpload marks a pending asset as uploaded.
func ConfirmUpload(ctx context.Context, assetID uuid.UUID) (*models.CreativeAsset, apperrors.Error) {
	a, err := db.DB(ctx).GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if a.Status != models.AssetStatusPending {
		return nil, ErrAlreadyFinal
	}
	if err := db.DB(ctx).UpdateAssetStatus(ctx, assetID, models.AssetStatusUploaded); err != nil {
		return nil, err
	}
	a.Status = models.AssetStatusUploaded
	return a, nil
}

// ArchiveAsset retires an uploaded asset. The object stays in storage.
func ArchiveAsset(ctx context.Context, assetID uuid.UUID) (*models.CreativeAsset, apperrors.Error) {
	a, err := db.DB(ctx).GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if a.Status != models.AssetStatusUploaded {
		return nil, ErrNotUploaded
	}
	if err := db.DB(ctx).UpdateAssetStatus(ctx, assetID, models.AssetStatusArchived); err != nil {
		return nil, err
	}
	a.Status = models.AssetStatusArchived
	return a, nil
}

// GetDownloadURL returns a presigned GET URL for an uploaded asset.
func GetDownloadURL(ctx context.Context, assetID uuid.UUID) (*DownloadGrant, apperrors.Error) {
	a, err := db.DB(ctx).GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if a.Status != models.AssetStatusUploaded {
		return nil, ErrNotUploaded
	}
	sg, err := getSigner()
	if err != nil {
		return nil, err
	}
	validity := urlValidity()
	url, err := sg.SignDownload(a.ObjectKey, validity)
	if err != nil {
		return nil, err
	}
	return &DownloadGrant{AssetID: a.AssetID, DownloadURL: url, ExpiresAt: time.Now().Add(validity)}, nil
}

// ListAssets returns all assets for a campaign.
func ListAssets(ctx context.Context, campaignID uuid.UUID) ([]*models.CreativeAsset, apperrors.Error) {
	return db.DB(ctx).ListAssetsByCampaign(ctx, campaignID)
}
