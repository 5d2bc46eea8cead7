package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

/*
   Column       |          Type           | Nullable |      Default
----------------+-------------------------+----------+--------------------
 user_id        | uuid                    | not null | gen_random_uuid()
 org_id         | uuid                    | not null | fk organizations
 email          | character varying(256)  | not null | unique per org
 full_name      | character varying(128)  | not null |
 role           | character varying(16)   | not null |
 password_hash  | text                    | not null |
 is_active      | boolean                 | not null | true
 created_at     | timestamptz             | not null | now()
 updated_at     | timestamptz             | not null | now()
*/

type User struct {
	UserID       uuid.UUID        `db:"user_id"`
	OrgID        uuid.UUID        `db:"org_id"`
	Email        string           `db:"email"`
	FullName     string           `db:"full_name"`
	Role         salescommon.Role `db:"role"`
	PasswordHash string           `db:"password_hash"`
	IsActive     bool             `db:"is_active"`
	CreatedAt    time.Time        `db:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at"`
}
