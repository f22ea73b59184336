// Package migrations embeds the Postgres schema of the durable store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
