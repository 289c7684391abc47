// Package houdinimcp runs the Houdini command server.
//
// The command server accepts newline delimited JSON commands over TCP, executes
// them one at a time against the scene and answers each with a single response.
// Start and Stop control the process wide server; Run is the entry point of the
// houdini-host binary. The MCP side lives in the bridge package.
package houdinimcp
