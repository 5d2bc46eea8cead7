// Package dbmanager manages the PostgreSQL connection pool. Connections are
// checked out per request and scoped to the calling organization's schema by
// pinning search_path, which is how tenant isolation is enforced.
package dbmanager

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"
)

type ScopedDb interface {
	// Conn returns a new connection to the database.
	Conn(ctx context.Context) (ScopedConn, error)
	// Stats returns the number of connection requests and returns.
	Stats() (requests, returns uint64)
}

type ScopedConn interface {
	// AddScopes sets the given scope settings on the connection.
	AddScopes(ctx context.Context, scopes map[string]string) error
	// DropScopes resets the given scope settings on the connection.
	DropScopes(ctx context.Context, scopes []string) error
	// AddScope sets a single scope setting on the connection.
	AddScope(ctx context.Context, scope, value string) error
	// DropScope resets a single scope setting on the connection.
	DropScope(ctx context.Context, scope string) error
	// DropAllScopes resets all configured scope settings.
	DropAllScopes(ctx context.Context) error
	// Conn returns the underlying connection.
	Conn() *sql.Conn
	// Close drops all scopes and returns the connection to the pool.
	Close(ctx context.Context)
}

func NewScopedDb(ctx context.Context, dbtype string, configuredScopes []string) ScopedDb {
	switch dbtype {
	case "postgresql":
		db, err := NewPostgresqlDb(configuredScopes)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Failed to create PostgreSQL DB")
			return nil
		}
		return db
	}
	return nil
}
