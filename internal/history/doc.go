// Package history records finished batch runs and their per-file outcomes
// in a local SQLite database.
package history
