package salesmanager

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/models"
)

// AgencyRequest carries the writable agency fields.
type AgencyRequest struct {
	Name         string `json:"name" validate:"required,max=256"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
	IsActive     *bool  `json:"is_active"`
}

func boolOrTrue(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}

func CreateAgency(ctx context.Context, req *AgencyRequest) (*models.Agency, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	a := &models.Agency{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		IsActive:     boolOrTrue(req.IsActive),
	}
	if err := db.DB(ctx).CreateAgency(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func UpdateAgency(ctx context.Context, agencyID uuid.UUID, req *AgencyRequest) (*models.Agency, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	a, err := db.DB(ctx).GetAgency(ctx, agencyID)
	if err != nil {
		return nil, err
	}
	a.Name = req.Name
	a.ContactEmail = req.ContactEmail
	a.ContactPhone = req.ContactPhone
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	if err := db.DB(ctx).UpdateAgency(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// AdvertiserRequest carries the writable advertiser fields. AgencyID and
// SellerID are the hierarchy edges the budget roll-up follows.
type AdvertiserRequest struct {
	Name         string     `json:"name" validate:"required,max=256"`
	AgencyID     *uuid.UUID `json:"agency_id"`
	SellerID     *uuid.UUID `json:"seller_id"`
	ContactEmail string     `json:"contact_email" validate:"omitempty,email"`
	Industry     string     `json:"industry"`
	IsActive     *bool      `json:"is_active"`
}

func CreateAdvertiser(ctx context.Context, req *AdvertiserRequest) (*models.Advertiser, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	a := &models.Advertiser{
		Name:         req.Name,
		AgencyID:     req.AgencyID,
		SellerID:     req.SellerID,
		ContactEmail: req.ContactEmail,
		Industry:     req.Industry,
		IsActive:     boolOrTrue(req.IsActive),
	}
	if err := db.DB(ctx).CreateAdvertiser(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func UpdateAdvertiser(ctx context.Context, advertiserID uuid.UUID, req *AdvertiserRequest) (*models.Advertiser, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	a, err := db.DB(ctx).GetAdvertiser(ctx, advertiserID)
	if err != nil {
		return nil, err
	}
	a.Name = req.Name
	a.AgencyID = req.AgencyID
	a.SellerID = req.SellerID
	a.ContactEmail = req.ContactEmail
	a.Industry = req.Industry
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	if err := db.DB(ctx).UpdateAdvertiser(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ShowRequest carries the writable show fields.
type ShowRequest struct {
	Name        string `json:"name" validate:"required,max=256"`
	Description string `json:"description"`
	Host        string `json:"host"`
	Category    string `json:"category"`
	IsActive    *bool  `json:"is_active"`
}

func CreateShow(ctx context.Context, req *ShowRequest) (*models.Show, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	s := &models.Show{
		Name:        req.Name,
		Description: req.Description,
		Host:        req.Host,
		Category:    req.Category,
		IsActive:    boolOrTrue(req.IsActive),
	}
	if err := db.DB(ctx).CreateShow(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func UpdateShow(ctx context.Context, showID uuid.UUID, req *ShowRequest) (*models.Show, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	s, err := db.DB(ctx).GetShow(ctx, showID)
	if err != nil {
		return nil, err
	}
	s.Name = req.Name
	s.Description = req.Description
	s.Host = req.Host
	s.Category = req.Category
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	if err := db.DB(ctx).UpdateShow(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// EpisodeRequest carries the writable episode fields.
type EpisodeRequest struct {
	ShowID        uuid.UUID  `json:"show_id" validate:"required"`
	Title         string     `json:"title" validate:"required,max=256"`
	EpisodeNumber int        `json:"episode_number" validate:"min=1"`
	AirDate       *time.Time `json:"air_date"`
	DurationSecs  int        `json:"duration_secs" validate:"min=0"`
}

func CreateEpisode(ctx context.Context, req *EpisodeRequest) (*models.Episode, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	e := &models.Episode{
		ShowID:        req.ShowID,
		Title:         req.Title,
		EpisodeNumber: req.EpisodeNumber,
		AirDate:       req.AirDate,
		DurationSecs:  req.DurationSecs,
	}
	if err := db.DB(ctx).CreateEpisode(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func UpdateEpisode(ctx context.Context, episodeID uuid.UUID, req *EpisodeRequest) (*models.Episode, apperrors.Error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	e, err := db.DB(ctx).GetEpisode(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	e.Title = req.Title
	e.EpisodeNumber = req.EpisodeNumber
	e.AirDate = req.AirDate
	e.DurationSecs = req.DurationSecs
	if err := db.DB(ctx).UpdateEpisode(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
