package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
)

const (
	ProposalStatusDraft    = "draft"
	ProposalStatusSent     = "sent"
	ProposalStatusApproved = "approved"
	ProposalStatusRejected = "rejected"
)

// Proposal is the live document. Body is a JSONB snapshot of line items,
// terms and notes; every mutation appends a ProposalVersion.
type Proposal struct {
	ProposalID     uuid.UUID    `db:"proposal_id"`
	AdvertiserID   uuid.UUID    `db:"advertiser_id"`
	Title          string       `db:"title"`
	Status         string       `db:"status"`
	Body           pgtype.JSONB `db:"body"`
	CurrentVersion int          `db:"current_version"`
	CreatedBy      uuid.UUID    `db:"created_by"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

/*
 proposal_versions: unique (proposal_id, version_num); append-only, version
 numbers are dense starting at 1.
*/
type ProposalVersion struct {
	VersionID  uuid.UUID    `db:"version_id"`
	ProposalID uuid.UUID    `db:"proposal_id"`
	VersionNum int          `db:"version_num"`
	Title      string       `db:"title"`
	Status     string       `db:"status"`
	Body       pgtype.JSONB `db:"body"`
	ChangeNote string       `db:"change_note"`
	CreatedBy  uuid.UUID    `db:"created_by"`
	CreatedAt  time.Time    `db:"created_at"`
}
