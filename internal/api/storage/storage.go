package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/shared/database"
	"github.com/jmoiron/sqlx"
)

// Storage is the SQL implementation of Store. Queries are written with ?
// placeholders and rebound for the driver in use.
type Storage struct {
	client *database.Client
	db     *sqlx.DB
	lower  string // LOWER, or unicode_lower on SQLite
}

var _ Store = (*Storage)(nil)

// NewStorage wraps an open database client. Close closes the client.
func NewStorage(client *database.Client) *Storage {
	return &Storage{
		client: client,
		db:     client.GetDB(),
		lower:  client.LowerFunc(),
	}
}

// Migrate creates the schema for the client's driver
func (s *Storage) Migrate(ctx context.Context) error {
	return Migrate(ctx, s.client)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.HealthCheck(ctx)
}

func (s *Storage) Close() error {
	return s.client.Close()
}

// likeEscape pairs with likePattern so user input never acts as a wildcard
const likeEscape = ` ESCAPE '\'`

// likeColumn lower-cases column for a likePattern comparison
func (s *Storage) likeColumn(column string) string {
	return s.lower + "(" + column + ") LIKE ?" + likeEscape
}

func likePattern(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}

// notFound turns sql.ErrNoRows into a wrapped domain.ErrNotFound
func notFound(err error, what string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", what, id, domain.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

// expectOne maps a zero-row UPDATE/DELETE to domain.ErrNotFound
func expectOne(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, domain.ErrNotFound)
	}
	return nil
}
