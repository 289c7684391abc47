// Package conv coerces values decoded from the wire.
//
// Numbers arrive as json.Number; the helpers turn those and plain Go numeric
// types into the shape a handler needs.
package conv
