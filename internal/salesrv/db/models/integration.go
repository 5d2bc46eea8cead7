package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
)

const (
	SyncStatusNever   = "never"
	SyncStatusOK      = "ok"
	SyncStatusFailed  = "failed"
	SyncStatusRunning = "running"
)

/*
 integrations: unique per provider. Config is validated against the
 provider's JSON Schema before it is stored.
*/
type Integration struct {
	IntegrationID uuid.UUID    `db:"integration_id"`
	Provider      string       `db:"provider"`
	DisplayName   string       `db:"display_name"`
	Config        pgtype.JSONB `db:"config"`
	Enabled       bool         `db:"enabled"`
	LastSyncedAt  *time.Time   `db:"last_synced_at"`
	SyncStatus    string       `db:"sync_status"`
	SyncError     string       `db:"sync_error"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}
