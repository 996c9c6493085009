// Package config loads, normalizes, and validates the quickreviewer TOML
// configuration. Secrets may be supplied through environment variables so the
// config file never has to hold API keys.
package config
