// Package linker creates a single hardlink with sanitization, pre-flight
// checks, and a verified-copy fallback. It is the atomic unit of work for
// batch processing: every failure maps to a specific sentinel error so
// callers can aggregate per-file diagnostics.
package linker
