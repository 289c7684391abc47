// Package config defines host and bridge settings and loads them from YAML,
// TOML or JSON files on any storage supported by afs.
package config
