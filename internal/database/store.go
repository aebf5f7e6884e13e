package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"datachat/internal/tools"
)

// Store executes SQL queries against a PostgreSQL database and holds the
// schema information cache. Connections live in a pgx pool, which
// re-establishes them transparently when they are found closed.
type Store struct {
	pool   *pgxpool.Pool
	schema *SchemaInfo
}

// NewStore connects to the database and fetches the schema information once.
// The schema cache is treated as immutable for the lifetime of the store.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := createConnectionPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	schema, err := fetchSchemaInfo(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to fetch schema information: %w", err)
	}

	return &Store{pool: pool, schema: schema}, nil
}

// createConnectionPool creates a pgx connection pool and verifies connectivity.
func createConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// The tool issues one query at a time; a small pool is plenty.
	config.MaxConns = 4
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// Schema returns the cached schema information.
func (s *Store) Schema() *SchemaInfo {
	return s.schema
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Query executes a SQL query and returns rows as column->value maps, in
// result order.
func (s *Store) Query(ctx context.Context, query string) ([]map[string]any, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query cannot be empty", tools.ErrInvalidInput)
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute query: %v", tools.ErrUnavailable, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()

	var results []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read row: %v", tools.ErrUnavailable, err)
		}

		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[fd.Name] = values[i]
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to execute query: %v", tools.ErrUnavailable, err)
	}

	return results, nil
}
