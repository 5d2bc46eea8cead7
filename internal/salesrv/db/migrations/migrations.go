// Package migrations embeds the SQL migrations for the two schema flavors:
// the public schema (organizations, users, signing keys) and the per-org
// schema every tenant gets a copy of. The golang-migrate iofs driver reads
// them from the embedded filesystems.
package migrations

import "embed"

//go:embed public/*.sql
var Public embed.FS

//go:embed orgschema/*.sql
var Org embed.FS

const (
	PublicVersion = 1
	OrgVersion    = 1
)
