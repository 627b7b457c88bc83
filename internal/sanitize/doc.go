// Package sanitize rewrites file and directory names into filesystem-safe
// equivalents.
//
// The primary use cases are:
//   - Replacing characters that are illegal on common filesystems
//   - Folding full-width CJK punctuation to half-width equivalents
//   - Enforcing per-segment length limits without splitting multi-byte runes
//   - Deriving season folder names from templates and path segments
//
// All functions are pure and idempotent: applying them twice yields the same
// result as applying them once.
package sanitize
