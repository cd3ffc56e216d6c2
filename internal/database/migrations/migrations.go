// Package migrations holds the bun migration set for the moderation schema.
package migrations

import "github.com/uptrace/bun/migrate"

// Migrations is the collection all migration files register into.
var Migrations = migrate.NewMigrations()
