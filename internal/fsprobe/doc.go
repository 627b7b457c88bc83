// Package fsprobe answers read-only questions about the filesystem before a
// link is attempted: device identity, directory writability, and path length
// budgets. Probes that cannot be answered on the current platform fail open
// so the link attempt itself remains the source of truth.
package fsprobe
