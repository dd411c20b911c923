// Package apperr defines the shared error taxonomy for sync sessions.
//
// Stages tag failures with sentinel markers so callers can classify them with
// errors.Is: configuration and snapshot faults are fatal and stop the session
// before any file is touched, while file access, rewrite, and name collision
// faults stay scoped to a single file's outcome.
package apperr
