// Package ingest turns the wide-format plan CSV into flat task records and
// maintains the drawing-notes cache. It is the only component that touches
// files; the scheduling core consumes its output as plain data. Structural
// problems surface as warning strings, never as errors, as long as a usable
// task list can be produced.
package ingest
