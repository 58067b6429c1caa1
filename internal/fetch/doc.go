// Package fetch issues timed HTTP GETs for the scrapers and converts every
// transport problem into a typed *Error.
//
// A Client owns one *http.Client for its whole lifetime so connections are
// reused across commands; Close releases them. Nothing here retries.
package fetch
