// Package store persists the occupancy domain through GORM. The sentinel
// errors below are the failure taxonomy shared with the lifecycle manager and
// the API layer; handlers translate them to HTTP status codes with errors.Is.
package store

import "errors"

// ErrNotFound is returned when a room, occupation, product or admin does not
// exist. Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when an operation cannot proceed because of
// existing records, such as a duplicate room number, a second active
// occupation for the same room, or deleting a product that has consumptions.
// Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflicting record exists")

// ErrInvalidInput is returned when a required field is missing or a value is
// out of range (including an underage responsible or companion). Values are
// never silently corrected.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidState is returned when the operation is not allowed in the
// entity's current lifecycle state, such as charging a completed occupation
// or deleting an active one.
var ErrInvalidState = errors.New("operation not allowed in current state")
