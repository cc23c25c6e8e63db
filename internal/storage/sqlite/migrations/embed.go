// Package migrations embeds the SQL migration scripts for the SQLite store.
package migrations

import "embed"

// FS contains the embedded SQLite migrations.
//
//go:embed *.sql
var FS embed.FS
