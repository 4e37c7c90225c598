// Package migrations embeds SQL migration files into the binary.
//
// Importing it for side effects registers the files with package database,
// so the service can migrate without the SQL present on disk.
package migrations

import (
	"embed"

	"github.com/nerrad567/gray-logic-props/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
