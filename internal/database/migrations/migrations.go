// Package migrations contains the Go-registered database migrations.
package migrations

import "github.com/uptrace/bun/migrate"

// Migrations holds all registered migrations in order.
var Migrations = migrate.NewMigrations()
