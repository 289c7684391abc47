// Package host implements the TCP command server embedded in the host
// application.
//
// Each accepted connection is a session: commands are read one at a time,
// dispatched and answered in order until the peer closes the connection, a
// frame cannot be decoded or the session stays idle longer than the idle
// timeout. A Lifecycle guards start and stop so at most one server runs at a
// time; Default returns the process wide instance.
package host
