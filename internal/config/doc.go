// Package config loads the asset browser settings from a YAML file and
// provides the built-in defaults.
//
// Settings are immutable snapshots threaded into the components that use
// them; there is no mutable global configuration.
package config
