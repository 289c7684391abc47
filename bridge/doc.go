// Package bridge relays MCP tool calls to the Houdini command server.
//
// Every tool call becomes exactly one command on a single TCP connection that
// is reused between calls and replaced after any failure. The bridge does not
// retry: a timeout, an unreachable host or an error response is reported to
// the MCP client as a failed tool result.
package bridge
