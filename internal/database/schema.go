package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TableInfo holds the columns of one table with their data types.
type TableInfo struct {
	Columns   []string
	DataTypes []string
}

// Relationship is one foreign-key edge between two tables.
type Relationship struct {
	TableFrom  string
	ColumnFrom string
	TableTo    string
	ColumnTo   string
}

// SchemaInfo is a snapshot of the database shape: tables with their columns
// plus foreign-key relationships. Fetched once at store construction and
// immutable afterwards.
type SchemaInfo struct {
	Tables        map[string]TableInfo
	Relationships []Relationship
}

const tablesQuery = `
	SELECT
		t.table_name,
		array_agg(DISTINCT c.column_name) AS columns,
		array_agg(DISTINCT c.data_type) AS data_types
	FROM information_schema.tables t
	JOIN information_schema.columns c
		ON c.table_name = t.table_name
	WHERE t.table_schema = 'public'
	GROUP BY t.table_name`

const relationshipsQuery = `
	SELECT
		tc.table_name AS table_from,
		kcu.column_name AS column_from,
		ccu.table_name AS table_to,
		ccu.column_name AS column_to
	FROM information_schema.table_constraints AS tc
	JOIN information_schema.key_column_usage AS kcu
		ON tc.constraint_name = kcu.constraint_name
	JOIN information_schema.constraint_column_usage AS ccu
		ON ccu.constraint_name = tc.constraint_name
	WHERE tc.constraint_type = 'FOREIGN KEY'`

// fetchSchemaInfo introspects the public schema for tables, columns, and
// foreign-key relationships.
func fetchSchemaInfo(ctx context.Context, pool *pgxpool.Pool) (*SchemaInfo, error) {
	info := &SchemaInfo{
		Tables: make(map[string]TableInfo),
	}

	rows, err := pool.Query(ctx, tablesQuery)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var columns, dataTypes []string
		if err := rows.Scan(&name, &columns, &dataTypes); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		info.Tables[name] = TableInfo{Columns: columns, DataTypes: dataTypes}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}

	relRows, err := pool.Query(ctx, relationshipsQuery)
	if err != nil {
		return nil, fmt.Errorf("query relationships: %w", err)
	}
	defer relRows.Close()

	for relRows.Next() {
		var rel Relationship
		if err := relRows.Scan(&rel.TableFrom, &rel.ColumnFrom, &rel.TableTo, &rel.ColumnTo); err != nil {
			return nil, fmt.Errorf("scan relationship row: %w", err)
		}
		info.Relationships = append(info.Relationships, rel)
	}
	if err := relRows.Err(); err != nil {
		return nil, fmt.Errorf("query relationships: %w", err)
	}

	return info, nil
}

// TableNames returns the table names in sorted order.
func (s *SchemaInfo) TableNames() []string {
	names := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe renders the schema as a text summary for the model. The output is
// deterministic: tables are listed in sorted order so an unchanged schema
// always renders identically.
func (s *SchemaInfo) Describe() string {
	var b strings.Builder

	b.WriteString("Tables and Columns:\n")
	for _, name := range s.TableNames() {
		fmt.Fprintf(&b, "%s: %s\n", name, strings.Join(s.Tables[name].Columns, ", "))
	}

	b.WriteString("\nRelationships:\n")
	for _, rel := range s.Relationships {
		fmt.Fprintf(&b, "%s.%s -> %s.%s\n", rel.TableFrom, rel.ColumnFrom, rel.TableTo, rel.ColumnTo)
	}

	return b.String()
}
