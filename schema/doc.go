// Package schema derives MCP tool declarations from command specs.
package schema
