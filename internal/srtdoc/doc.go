// Package srtdoc models SubRip subtitle documents.
//
// A document is an ordered sequence of blocks, each carrying a positive
// index, a start/end timecode, and one or more text lines. Parsing is
// strict: a malformed record aborts the whole document with a ParseError so
// that downstream stages can rely on index contiguity. Formatting is the
// exact structural inverse of parsing; a conformant document round-trips
// byte-identically.
package srtdoc
