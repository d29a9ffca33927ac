// Package migrations embeds goose SQL migrations for the on-device cache.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
