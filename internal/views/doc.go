// Package views turns backend models into the view models rendered by the
// console templates. Everything here is pure: no I/O, no shared state.
package views
