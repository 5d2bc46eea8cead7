package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ApprovalStatusPending   = "pending"
	ApprovalStatusApproved  = "approved"
	ApprovalStatusRevision  = "revision_requested"
	ApprovalStatusRejected  = "rejected"
)

const (
	ApprovalPriorityLow    = "low"
	ApprovalPriorityMedium = "medium"
	ApprovalPriorityHigh   = "high"
)

// Approval is one ad-approval request for a campaign's spot on a show.
type Approval struct {
	ApprovalID    uuid.UUID  `db:"approval_id"`
	CampaignID    uuid.UUID  `db:"campaign_id"`
	ShowID        uuid.UUID  `db:"show_id"`
	AdType        string     `db:"ad_type"`
	DurationSecs  int        `db:"duration_secs"`
	Script        string     `db:"script"`
	TalkingPoints string     `db:"talking_points"`
	Priority      string     `db:"priority"`
	Deadline      *time.Time `db:"deadline"`
	Status        string     `db:"status"`
	SubmittedBy   uuid.UUID  `db:"submitted_by"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// ApprovalEvent is an append-only audit row recording a status transition.
type ApprovalEvent struct {
	EventID    uuid.UUID `db:"event_id"`
	ApprovalID uuid.UUID `db:"approval_id"`
	FromStatus string    `db:"from_status"`
	ToStatus   string    `db:"to_status"`
	Comment    string    `db:"comment"`
	ActorID    uuid.UUID `db:"actor_id"`
	CreatedAt  time.Time `db:"created_at"`
}

// ValidApprovalTransition implements the approval state machine: approve,
// reject and request-revision only apply to pending requests; a revision may
// be resubmitted.
func ValidApprovalTransition(from, to string) bool {
	allowed := map[string][]string{
		ApprovalStatusPending:  {ApprovalStatusApproved, ApprovalStatusRejected, ApprovalStatusRevision},
		ApprovalStatusRevision: {ApprovalStatusPending},
	}
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}
