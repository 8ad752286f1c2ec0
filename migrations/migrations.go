package migrations

import "embed"

// Migration files embedded at compile time, one set per supported driver.
// Single-binary deployment without external file dependencies.
//
//go:embed sqlite/*.sql
var SqliteMigrations embed.FS

//go:embed postgres/*.sql
var PostgresMigrations embed.FS
