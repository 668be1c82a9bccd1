// Package engine runs a directory comparison end to end.
package engine
