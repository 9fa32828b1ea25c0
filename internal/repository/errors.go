// Package repository implements the data-access layer over the shared
// *sql.DB.  Sentinel errors defined here let handlers distinguish failure
// scenarios without inspecting driver errors.  Driver diagnostics never
// cross this boundary into HTTP responses.
package repository

import "errors"

// ErrEventNotFound is returned when an event id does not exist.  Handlers
// should translate this into an HTTP 404 response.
var ErrEventNotFound = errors.New("event not found")

// ErrEventFull is returned when a registration would exceed the event's
// max_attendees.  This is a client error (HTTP 400), not a server fault.
var ErrEventFull = errors.New("event full")

// ErrRequestNotFound is returned when a pending event request id does not
// exist.  Handlers should translate this into an HTTP 404 response.
var ErrRequestNotFound = errors.New("event request not found")

// ErrRequestClosed is returned when approving or rejecting a request that
// has already reached a terminal status.  Handlers should translate this
// into an HTTP 409 response.
var ErrRequestClosed = errors.New("event request already processed")
