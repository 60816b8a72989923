package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SQLSTATE codes and constraint names the repository maps to typed errors
const (
	CodeCheckViolation       = "23514"
	CodeForeignKeyViolation  = "23503"
	ConstraintMaxOutstanding = "payments_max_outstanding"
)

//go:embed schema.sql
var schema string

// Migrate creates the tables and the outstanding-months trigger. It is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	// no arguments, so pgx sends it over the simple protocol and the
	// multi-statement script runs as one batch
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
