// Package sdh detects and strips supplemental descriptive content (music
// markers, bracketed sound and emotion cues) from subtitle documents.
//
// Blocks made up entirely of descriptive spans are dropped; mixed blocks
// keep their dialogue with the spans excised. Removal is the only operation
// besides parsing that may change a document's block count, and it always
// resequences indices afterwards.
package sdh
