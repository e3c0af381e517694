// Package migrations embeds the SQL schema migrations. The files use the
// subset of SQL shared by sqlite and postgres.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
