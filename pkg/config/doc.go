// Package config handles configuration management for gim.
// It layers the embedded defaults, the user's config.toml and GIM_*
// environment variables, in that order, using koanf.
package config
