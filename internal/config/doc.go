// Package config defines the bgs configuration model and its viper wiring.
//
// Configuration is layered: built-in defaults, then an optional YAML config
// file at $XDG_CONFIG_HOME/bgs/config.yaml (or ~/.config/bgs/config.yaml),
// then BGS_* environment variables, then command-line flags. Flags always
// win. Only defaults for the group command live here; per-invocation values
// such as the source directory stay flag-only.
package config
