// Package scene provides an in-memory Houdini-like scene graph and the command
// handlers that operate on it. It backs the houdini-host binary and tests; an
// embedding host with a real scene API registers its own handlers against the
// same catalog instead.
//
// A Graph is not safe for concurrent use. Handlers registered with Register
// rely on the command dispatcher to serialize access.
package scene
