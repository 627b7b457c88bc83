// Package config loads, normalizes, and validates weft's TOML configuration.
//
// Configuration resolves from an explicit --config path, then
// ~/.config/weft/config.toml, then a project-local weft.toml. Missing files
// fall back to defaults; path fields are expanded (~ and relative paths) and
// validated before use.
package config
