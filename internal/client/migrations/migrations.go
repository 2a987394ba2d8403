// Package migrations embeds the goose schema migrations of the offline store,
// one directory per SQL dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Dirs within Migrations.
const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)
