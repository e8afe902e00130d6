// Package migrations contains all database migration files.
// Each migration registers itself via init(); the package is blank-imported
// by cmd/tartufo so every migration is known at CLI startup.
package migrations
