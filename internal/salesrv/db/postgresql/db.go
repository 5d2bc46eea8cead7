// Package postgresql implements the db interfaces against PostgreSQL.
// Metadata queries run in the public schema; sales queries rely on the
// connection's search_path being pinned to the caller's org schema and
// refuse to run without an org context.
package postgresql

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/common/apperrors"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/dberror"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db/dbmanager"
	"github.com/podcastflow/podcastflow-pro/internal/salesrv/salescommon"
)

type metadataManager struct {
	c dbmanager.ScopedConn
}

type salesManager struct {
	c dbmanager.ScopedConn
}

type connectionManager struct {
	c dbmanager.ScopedConn
}

func NewSalesDb(c dbmanager.ScopedConn) (*metadataManager, *salesManager, *connectionManager) {
	return &metadataManager{c: c}, &salesManager{c: c}, &connectionManager{c: c}
}

func (mm *metadataManager) conn() *sql.Conn {
	return mm.c.Conn()
}

func (sm *salesManager) conn() *sql.Conn {
	return sm.c.Conn()
}

// requireOrgScope verifies that the request carries an org context before a
// sales query runs. Queries are schema-scoped via search_path; running one
// without the scope would hit the public schema and fail, but failing early
// with a clean error is friendlier.
func (sm *salesManager) requireOrgScope(ctx context.Context) apperrors.Error {
	if salescommon.GetOrgSchema(ctx) == "" {
		log.Ctx(ctx).Error().Msg("missing org context for sales query")
		return dberror.ErrMissingOrgContext
	}
	return nil
}

// ConnectionManager passthroughs

func (cm *connectionManager) AddScopes(ctx context.Context, scopes map[string]string) error {
	return cm.c.AddScopes(ctx, scopes)
}

func (cm *connectionManager) DropScopes(ctx context.Context, scopes []string) error {
	return cm.c.DropScopes(ctx, scopes)
}

func (cm *connectionManager) AddScope(ctx context.Context, scope, value string) error {
	return cm.c.AddScope(ctx, scope, value)
}

func (cm *connectionManager) DropScope(ctx context.Context, scope string) error {
	return cm.c.DropScope(ctx, scope)
}

func (cm *connectionManager) DropAllScopes(ctx context.Context) error {
	return cm.c.DropAllScopes(ctx)
}

func (cm *connectionManager) Close(ctx context.Context) {
	cm.c.Close(ctx)
}
