// Package kvstore implements flat-file persistence for all domain entities.
//
// Each entity type lives in its own JSON file under the store's data
// directory, holding a single array of records. Every mutation reads the
// whole collection, applies the change in memory, and rewrites the file, so
// the on-disk state is always a complete snapshot. Identifiers are assigned
// by scanning the collection for its current maximum, which keeps ids stable
// across restarts without a separate counter file.
//
// The package mirrors the behavior of [repositories] exactly: owner scoping
// on every query, child-first cascading deletes, and legacy kind migration at
// read time. A shared mutex serializes access since the rewrite step is not
// safe to interleave.
package kvstore
