// Package burndb holds all the migrations for the burn tracker database
package burndb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the burn tracker database
var Migrations = migrate.NewMigrations()
