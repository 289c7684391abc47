// Package catalog declares the Houdini command names and their parameter
// contracts. The host registers handlers against these specs and the bridge
// exposes the same specs as MCP tools, so both sides agree on parameters.
package catalog
