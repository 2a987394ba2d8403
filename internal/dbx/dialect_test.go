package dbx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind_SQLiteUnchanged(t *testing.T) {
	q := `SELECT * FROM entities WHERE api_path = ? AND entity_type = ?`
	assert.Equal(t, q, Rebind(DialectSQLite, q))
}

func TestRebind_PostgresPositional(t *testing.T) {
	q := `UPDATE t SET a = ?, b = ? WHERE c = ?`
	assert.Equal(t, `UPDATE t SET a = $1, b = $2 WHERE c = $3`, Rebind(DialectPostgres, q))
}

func TestRebind_IgnoresQuotedQuestionMarks(t *testing.T) {
	q := `SELECT '?' AS lit, x FROM t WHERE y = ?`
	assert.Equal(t, `SELECT '?' AS lit, x FROM t WHERE y = $1`, Rebind(DialectPostgres, q))
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in   string
		want Dialect
	}{
		{"", DialectSQLite},
		{"sqlite3", DialectSQLite},
		{"SQLite", DialectSQLite},
		{"postgres", DialectPostgres},
		{"pgx", DialectPostgres},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDialect(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}

	_, err := ParseDialect("mysql")
	require.Error(t, err)
}
