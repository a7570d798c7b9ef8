// Package hsdt holds assets that are shared by every binary of the module.
package hsdt

import "embed"

// Migrations contains the goose SQL migrations for the fills schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS
