// Package hqdata holds the dashboard dataset and the overlay that layers
// locally edited collections on top of a read-only baseline.
//
// The pieces, leaves first:
//   - [LoadBaseline] / [LoadBaselineFile]: the immutable baseline [Dataset].
//   - [Store]: the persisted [Overrides] blob ([FileStore], [SQLiteStore], [MemoryStore]).
//   - [Merge]: picks each overridable collection from the overrides when
//     present, from the baseline otherwise.
//   - [Service]: copy-on-write mutations, export and import.
//
// Every mutation reads the whole blob, changes one collection and writes the
// whole blob back. There is no locking: two processes writing at once can
// lose each other's changes to collections they did not touch.
package hqdata
