// Package focusctl is a small command line tool that reads and edits persisted JSON documents
// through focused atoms.
//
// A document lives under a key in a persist.Backend. A path selects parts of it:
//
//	settings.theme    a field of an object
//	items[2]          an element of an array
//	items[*].qty      a field of every array element
//	""                the whole document
//
// Paths without [*] address at most one value. Reading a missing value fails with ErrPathNotFound.
// Paths with [*] address any number of values; writes apply to each of them and fail as a whole.
package focusctl
