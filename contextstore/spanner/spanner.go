// Package spanner implements the context selection store for Spanner.
package spanner

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/cccteam/authstate/contextstore"
	"github.com/cccteam/ccc"
	"github.com/cccteam/httpio"
	"github.com/cccteam/spxscan"
	"github.com/go-playground/errors/v5"
	"google.golang.org/grpc/codes"
)

var _ contextstore.Store = &Store{}

// Store persists context selections in a Spanner table.
type Store struct {
	spanner   *spanner.Client
	tableName string
}

// NewStore creates a Spanner-backed context selection store.
func NewStore(client *spanner.Client) *Store {
	return &Store{
		spanner:   client,
		tableName: "ContextSelections",
	}
}

// SetTableName overrides the default ContextSelections table name.
func (s *Store) SetTableName(name string) {
	s.tableName = name
}

// Selection returns the stored selection for username.
func (s *Store) Selection(ctx context.Context, username string) (*contextstore.Selection, error) {
	ctx, span := ccc.StartTrace(ctx)
	defer span.End()

	stmt := spanner.NewStatement(fmt.Sprintf(`
		SELECT
			Username,
			TenantId,
			ProjectId,
			Confirmed,
			UpdatedAt
		FROM %s
		WHERE Username = @username
	`, s.tableName))
	stmt.Params["username"] = username

	sel := &contextstore.Selection{}
	if err := spxscan.Get(ctx, s.spanner.Single(), sel, stmt); err != nil {
		if errors.Is(err, spxscan.ErrNotFound) {
			return nil, httpio.NewNotFoundMessagef("no context selection stored for %s", username)
		}

		return nil, errors.Wrapf(err, "failed to scan context selection for %s", username)
	}

	return sel, nil
}

// SaveSelection inserts or replaces the selection for selection.Username.
func (s *Store) SaveSelection(ctx context.Context, selection *contextstore.Selection) error {
	ctx, span := ccc.StartTrace(ctx)
	defer span.End()

	row := &contextstore.Selection{
		Username:  selection.Username,
		TenantID:  selection.TenantID,
		ProjectID: selection.ProjectID,
		Confirmed: selection.Confirmed,
		UpdatedAt: time.Now(),
	}

	mutation, err := spanner.InsertOrUpdateStruct(s.tableName, row)
	if err != nil {
		return errors.Wrap(err, "spanner.InsertOrUpdateStruct()")
	}

	if _, err := s.spanner.Apply(ctx, []*spanner.Mutation{mutation}); err != nil {
		return errors.Wrap(err, "spanner.Client.Apply()")
	}

	return nil
}

// ClearSelection removes the selection for username.
func (s *Store) ClearSelection(ctx context.Context, username string) error {
	ctx, span := ccc.StartTrace(ctx)
	defer span.End()

	mutation := spanner.Delete(s.tableName, spanner.Key{username})

	if _, err := s.spanner.Apply(ctx, []*spanner.Mutation{mutation}); err != nil {
		if spanner.ErrCode(err) != codes.NotFound {
			return errors.Wrap(err, "spanner.Client.Apply()")
		}
	}

	return nil
}
