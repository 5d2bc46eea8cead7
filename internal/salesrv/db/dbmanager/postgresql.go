package dbmanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/rs/zerolog/log"

	"github.com/podcastflow/podcastflow-pro/internal/salesrv/config"
)

type postgresConn struct {
	conn             *sql.Conn
	cancel           context.CancelFunc
	scopes           map[string]string
	configuredScopes []string
	pool             *postgresPool
}

type postgresPool struct {
	configuredScopes []string
	connRequests     uint64
	connReturns      uint64
	db               *sql.DB
}

// NewPostgresqlDb creates the PostgreSQL connection pool. configuredScopes
// lists the settings a checked-out connection may pin (search_path and the
// org GUC); anything else is refused.
func NewPostgresqlDb(configuredScopes []string) (ScopedDb, error) {
	sqlDB, err := sql.Open("pgx", config.Dsn())
	if err != nil {
		log.Error().Err(err).Msg("failed to open db")
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		log.Error().Err(err).Msg("failed to ping db")
		return nil, err
	}

	return &postgresPool{
		configuredScopes: configuredScopes,
		db:               sqlDB,
	}, nil
}

// Conn checks a connection out of the pool with statement and lock timeouts
// applied and all scopes reset.
func (p *postgresPool) Conn(ctx context.Context) (ScopedConn, error) {
	ctx, cancel := context.WithCancel(ctx)

	conn, err := p.db.Conn(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to obtain connection")
		cancel()
		return nil, err
	}

	if _, err := conn.ExecContext(ctx, "SET lock_timeout = '5s'"); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to set lock timeout")
		cancel()
		conn.Close()
		return nil, err
	}
	if _, err := conn.ExecContext(ctx, "SET statement_timeout = '10s'"); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to set statement timeout")
		cancel()
		conn.Close()
		return nil, err
	}

	h := &postgresConn{
		configuredScopes: p.configuredScopes,
		scopes:           make(map[string]string),
		cancel:           cancel,
		pool:             p,
		conn:             conn,
	}

	// Clean up scopes left over from a previous checkout, just in case.
	if err := h.DropScopes(ctx, p.configuredScopes); err != nil {
		cancel()
		conn.Close()
		return nil, err
	}

	p.connRequests++
	return h, nil
}

func (p *postgresPool) Stats() (requests, returns uint64) {
	return p.connRequests, p.connReturns
}

// Close drops all scopes and returns the connection back to the pool.
func (h *postgresConn) Close(ctx context.Context) {
	h.DropAllScopes(ctx)
	if h.cancel != nil {
		h.cancel()
	}
	if h.conn != nil {
		h.conn.Close()
	}
	h.pool.connReturns++
}

func (h *postgresConn) isConfiguredScope(scope string) bool {
	for _, s := range h.configuredScopes {
		if s == scope {
			return true
		}
	}
	return false
}

// AddScopes sets the given settings on the connection via set_config, which
// takes the value as a bind parameter.
func (h *postgresConn) AddScopes(ctx context.Context, scopes map[string]string) error {
	for scope, value := range scopes {
		if err := h.AddScope(ctx, scope, value); err != nil {
			return err
		}
	}
	return nil
}

func (h *postgresConn) AddScope(ctx context.Context, scope, value string) error {
	if h.conn == nil {
		return sql.ErrConnDone
	}
	if !h.isConfiguredScope(scope) {
		return nil
	}
	_, err := h.conn.ExecContext(ctx, "SELECT set_config($1, $2, false)", scope, value)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("scope", scope).Msg("failed to set scope")
		return err
	}
	h.scopes[scope] = value
	return nil
}

func (h *postgresConn) DropScopes(ctx context.Context, scopes []string) error {
	for _, scope := range scopes {
		if err := h.DropScope(ctx, scope); err != nil {
			return err
		}
	}
	return nil
}

func (h *postgresConn) DropScope(ctx context.Context, scope string) error {
	if h.conn == nil {
		return nil // don't return error and panic
	}
	// RESET cannot take a bind parameter; scope names come from the
	// configured list, never from request input.
	_, err := h.conn.ExecContext(ctx, fmt.Sprintf("RESET %s", scope))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("scope", scope).Msg("failed to reset scope")
		return err
	}
	delete(h.scopes, scope)
	return nil
}

func (h *postgresConn) DropAllScopes(ctx context.Context) error {
	return h.DropScopes(ctx, h.configuredScopes)
}

func (h *postgresConn) Conn() *sql.Conn {
	return h.conn
}
