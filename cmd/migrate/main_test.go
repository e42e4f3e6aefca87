package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDDLStatements(t *testing.T) {
	content := `
-- products
CREATE TABLE a (
  id STRING(64) NOT NULL,
) PRIMARY KEY (id);

CREATE INDEX idx_a ON a(id);
`
	statements := splitDDLStatements(content)
	require.Len(t, statements, 2)
	assert.True(t, strings.HasPrefix(statements[0], "CREATE TABLE a ("))
	assert.Equal(t, "CREATE INDEX idx_a ON a(id)", statements[1])
}

func TestSchemaMigration(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_initial_schema.sql"))
	require.NoError(t, err)

	statements := splitDDLStatements(string(content))
	var tables []string
	for _, stmt := range statements {
		if strings.HasPrefix(stmt, "CREATE TABLE ") {
			tables = append(tables, strings.Fields(stmt)[2])
		}
	}
	assert.Equal(t, []string{"products", "cart_items", "outbox_events"}, tables)
}
