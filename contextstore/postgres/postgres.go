// Package postgres implements the context selection store for PostgreSQL.
package postgres

import (
	"context"
	"time"

	"github.com/cccteam/authstate/contextstore"
	"github.com/cccteam/httpio"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/go-playground/errors/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
)

const name = "github.com/cccteam/authstate/contextstore/postgres"

// Queryer is the subset of pgx a Store needs. *pgxpool.Pool satisfies it.
type Queryer interface {
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
}

var _ contextstore.Store = &Store{}

// Store persists context selections in the ContextSelections table.
type Store struct {
	conn Queryer
}

// NewStore creates a PostgreSQL-backed context selection store.
func NewStore(conn Queryer) *Store {
	return &Store{
		conn: conn,
	}
}

// Selection returns the stored selection for username.
func (s *Store) Selection(ctx context.Context, username string) (*contextstore.Selection, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Store.Selection()")
	defer span.End()

	query := `
		SELECT
			"Username", "TenantId", "ProjectId", "Confirmed", "UpdatedAt"
		FROM "ContextSelections"
		WHERE "Username" = $1
	`

	sel := &contextstore.Selection{}
	if err := pgxscan.Get(ctx, s.conn, sel, query, username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpio.NewNotFoundMessagef("no context selection stored for %s", username)
		}

		return nil, errors.Wrapf(err, "failed to scan context selection for %s", username)
	}

	return sel, nil
}

// SaveSelection inserts or replaces the selection for selection.Username.
func (s *Store) SaveSelection(ctx context.Context, selection *contextstore.Selection) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Store.SaveSelection()")
	defer span.End()

	query := `
		INSERT INTO "ContextSelections"
			("Username", "TenantId", "ProjectId", "Confirmed", "UpdatedAt")
		VALUES
			($1, $2, $3, $4, $5)
		ON CONFLICT ("Username") DO UPDATE SET
			"TenantId" = EXCLUDED."TenantId",
			"ProjectId" = EXCLUDED."ProjectId",
			"Confirmed" = EXCLUDED."Confirmed",
			"UpdatedAt" = EXCLUDED."UpdatedAt"
	`

	if _, err := s.conn.Exec(ctx, query, selection.Username, selection.TenantID, selection.ProjectID, selection.Confirmed, time.Now()); err != nil {
		return errors.Wrapf(err, "failed to upsert context selection for %s", selection.Username)
	}

	return nil
}

// ClearSelection removes the selection for username.
func (s *Store) ClearSelection(ctx context.Context, username string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Store.ClearSelection()")
	defer span.End()

	query := `
		DELETE FROM "ContextSelections"
		WHERE "Username" = $1`

	if _, err := s.conn.Exec(ctx, query, username); err != nil {
		return errors.Wrapf(err, "failed to delete context selection for %s", username)
	}

	return nil
}
