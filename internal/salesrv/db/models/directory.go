package models

import (
	"time"

	"github.com/google/uuid"
)

// Agency, Advertiser, Show and Episode are the directory records the rest of
// the sales objects hang off. All four live in the org schema.

type Agency struct {
	AgencyID     uuid.UUID `db:"agency_id"`
	Name         string    `db:"name"`
	ContactEmail string    `db:"contact_email"`
	ContactPhone string    `db:"contact_phone"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Advertiser references an optional agency and the seller (user) who owns
// the account. SellerID points at public.users.
type Advertiser struct {
	AdvertiserID uuid.UUID  `db:"advertiser_id"`
	Name         string     `db:"name"`
	AgencyID     *uuid.UUID `db:"agency_id"`
	SellerID     *uuid.UUID `db:"seller_id"`
	ContactEmail string     `db:"contact_email"`
	Industry     string     `db:"industry"`
	IsActive     bool       `db:"is_active"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

type Show struct {
	ShowID      uuid.UUID `db:"show_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Host        string    `db:"host"`
	Category    string    `db:"category"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

/*
 episodes: (show_id, episode_number) unique. Downloads is refreshed by the
 integration sync.
*/
type Episode struct {
	EpisodeID     uuid.UUID  `db:"episode_id"`
	ShowID        uuid.UUID  `db:"show_id"`
	Title         string     `db:"title"`
	EpisodeNumber int        `db:"episode_number"`
	AirDate       *time.Time `db:"air_date"`
	DurationSecs  int        `db:"duration_secs"`
	Downloads     int64      `db:"downloads"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}
