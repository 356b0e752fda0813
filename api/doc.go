// Package api exposes the assistant over HTTP.
//
// The server wraps a dispatcher: POST /api/process routes free-form
// input through intent classification to a capability handler and
// returns the result envelope. Introspection endpoints list agent
// types, their capabilities, and validate action inputs without
// executing them.
package api
