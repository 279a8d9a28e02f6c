// Package migrations embeds the PostgreSQL schema migrations so that the
// migrate tool and integration tests apply the same SQL.
package migrations

import "embed"

// FS holds every *.sql migration in golang-migrate naming order.
//
//go:embed *.sql
var FS embed.FS

// BlobsUp is the file name of the migration that creates the blobs table.
const BlobsUp = "000001_create_blobs.up.sql"
