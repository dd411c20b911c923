// Package config loads, normalizes, and validates the karasync TOML
// configuration. Defaults live in defaults.go and a commented sample file is
// embedded for `karasync config init`.
package config
