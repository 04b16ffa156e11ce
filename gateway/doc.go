// Package gateway binds the public routes to the upstream clients and the
// word frequency tracker.
//
// Handlers parse query parameters, call their collaborators, and render the
// result through a shared responder. Invalid arguments and upstream failures
// both surface as HTTP 400 with a {"message": ...} body.
package gateway
