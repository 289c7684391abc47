// Package server provides a minimal MCP server over JSON-RPC.
//
// It serves initialize, ping, tools/list, tools/call and logging/setLevel for a
// Toolset, honours notifications/cancelled by cancelling the request context
// and forwards log messages to the client once it selected a level.
//
//	s, _ := server.New(server.WithToolset(tools))
//	log.Fatal(s.Stdio(ctx).ListenAndServe())
package server
