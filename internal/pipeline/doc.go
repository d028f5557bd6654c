// Package pipeline runs one processing pass over an input directory: every
// sheet is read and integrated in name order, then both result tables are
// exported and the run is optionally recorded in the history database.
package pipeline
