// Package command implements the registry and dispatcher that map a command
// name to a host capability.
//
// A Registry holds one Registration per command name. Each registration pairs a
// Spec, which declares the command's required and optional parameters, with the
// Handler that touches host state. The registry is populated at startup and is
// frozen while a command server is running.
//
// The Dispatcher is the single point that guarantees that every invocation ends
// with a well formed protocol.Response: unknown names, parameter violations,
// handler errors and handler panics are all converted into error responses.
//
// Handlers never run on the connection goroutine. Every invocation is routed
// through an Executor, either a dedicated Worker goroutine or a Poller that the
// host drains cooperatively from its own main loop, so at most one command
// touches host state at a time.
package command
