// Package models defines domain entities and persistence interfaces for the lectern note-taking service.
//
// Persistent entities form an ownership chain:
//   - [User] : account with email identity and hashed password
//   - [Course] : user-owned grouping of lectures
//   - [Lecture] : course-owned lecture with title and ordinal number
//   - [Transcript] : lecture-owned text record, classified by [TranscriptKind]
//
// All entities implement the [Model] interface providing integer identifiers,
// creation timestamps, and validation. Per-entity repository interfaces define
// the storage contract implemented by both backends (relational SQLite in
// internal/repositories, flat-file key-value in internal/kvstore); [Store]
// aggregates them.
//
// Every Course, Lecture, and Transcript carries its owning user id, and every
// read and delete operation filters by it: no cross-user visibility. Deletes
// cascade child-first and must leave no orphans.
package models
