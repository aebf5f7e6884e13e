package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"datachat/internal/llm"
	"datachat/internal/tools"
)

// ToolName is the name the tool is declared under to the model.
const ToolName = "execute_sql"

// Tool adapts the SQL store to the tools.Tool capability interface. The tool
// description embeds the schema summary so the model learns the database
// shape without a discovery round-trip.
type Tool struct {
	store *Store
}

// NewTool creates the SQL execution tool.
func NewTool(store *Store) *Tool {
	return &Tool{store: store}
}

// Describe implements tools.Tool. The descriptor is regenerated from the
// schema cache; it only changes when the cache does.
func (t *Tool) Describe() llm.ToolDescriptor {
	return llm.ToolDescriptor{
		Name: ToolName,
		Description: fmt.Sprintf(
			"Execute SQL queries on the PostgreSQL database with the following schema:\n\n%s\n"+
				"Return results as a list of records. Only generate SELECT queries unless "+
				"explicitly asked for other operations.",
			t.store.Schema().Describe(),
		),
		InputSchema: llm.InputSchema{
			Type: "object",
			Properties: map[string]llm.PropertySchema{
				"query": {Type: "string", Description: "SQL query to execute"},
			},
			Required: []string{"query"},
		},
	}
}

// Execute implements tools.Tool.
// Input parameters: query (string).
func (t *Tool) Execute(ctx context.Context, input map[string]any) (string, error) {
	query, err := tools.StringParam(input, "query")
	if err != nil {
		return "", err
	}

	rows, err := t.store.Query(ctx, query)
	if err != nil {
		return "", err
	}

	return formatRows(rows), nil
}

// formatRows serializes query results into model-readable text. Columns are
// rendered in sorted order so equal result sets render identically.
func formatRows(rows []map[string]any) string {
	if len(rows) == 0 {
		return "Query returned no rows."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d row(s):\n", len(rows))
	for _, row := range rows {
		columns := make([]string, 0, len(row))
		for column := range row {
			columns = append(columns, column)
		}
		sort.Strings(columns)

		parts := make([]string, 0, len(columns))
		for _, column := range columns {
			parts = append(parts, fmt.Sprintf("%s=%v", column, row[column]))
		}
		fmt.Fprintf(&b, "- %s\n", strings.Join(parts, " "))
	}
	return b.String()
}
