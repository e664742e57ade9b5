// Package migrations embeds the goose SQL migrations for the tutor schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
