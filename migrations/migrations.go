// Package migrations embeds the postgres schema of the snapshots storage.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
