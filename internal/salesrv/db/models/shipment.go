package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ShipmentStatusPending   = "pending"
	ShipmentStatusShipped   = "shipped"
	ShipmentStatusDelivered = "delivered"
	ShipmentStatusReturned  = "returned"
)

// Shipment tracks product sent to a show for host-read sponsorships.
type Shipment struct {
	ShipmentID     uuid.UUID  `db:"shipment_id"`
	CampaignID     uuid.UUID  `db:"campaign_id"`
	ShowID         uuid.UUID  `db:"show_id"`
	Description    string     `db:"description"`
	Carrier        string     `db:"carrier"`
	TrackingNumber string     `db:"tracking_number"`
	Status         string     `db:"status"`
	ShippedAt      *time.Time `db:"shipped_at"`
	DeliveredAt    *time.Time `db:"delivered_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// ValidShipmentTransition reports whether a shipment may move between
// statuses. Delivered may still be returned.
func ValidShipmentTransition(from, to string) bool {
	allowed := map[string][]string{
		ShipmentStatusPending:   {ShipmentStatusShipped},
		ShipmentStatusShipped:   {ShipmentStatusDelivered, ShipmentStatusReturned},
		ShipmentStatusDelivered: {ShipmentStatusReturned},
	}
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}
