// Package render describes the display region as a View and turns it into
// bytes through named renderers. Builders such as Stored, NotFound and
// Failure are pure functions from a submission outcome to a View.
package render
