// Package export renders the flat name/value mapping of a parameter store
// in other configuration formats.
//
// Every format keeps the store order and encodes values as strings; the
// parameter file carries no type information of its own.
package export
