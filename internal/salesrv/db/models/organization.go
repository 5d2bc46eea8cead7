// Package models defines the relational records persisted by the sales
// service. Organizations, users and signing keys live in the public schema;
// everything else lives in the owning organization's dedicated schema.
package models

import (
	"time"

	"github.com/google/uuid"
)

/*
   Column      |          Type           | Collation | Nullable |      Default
---------------+-------------------------+-----------+----------+--------------------
 org_id        | uuid                    |           | not null | gen_random_uuid()
 name          | character varying(128)  |           | not null |
 slug          | character varying(64)   |           | not null | unique
 schema_name   | character varying(64)   |           | not null | unique
 plan          | character varying(32)   |           | not null | 'standard'
 status        | character varying(16)   |           | not null | 'active'
 created_at    | timestamptz             |           | not null | now()
 updated_at    | timestamptz             |           | not null | now()
*/

const (
	OrgStatusActive   = "active"
	OrgStatusInactive = "inactive"
)

type Organization struct {
	OrgID      uuid.UUID `db:"org_id"`
	Name       string    `db:"name"`
	Slug       string    `db:"slug"`
	SchemaName string    `db:"schema_name"`
	Plan       string    `db:"plan"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
