// Package diff splits text into lines and produces unified-diff hunks
// between two line sequences.
//
// Hunks are rendered without the "---"/"+++" file header lines; callers
// print their own banner before the hunks.
package diff
