// Package repositories implements SQLite persistence for all domain entities.
//
// Every query below the user level is scoped by the owning user id so that one
// account can never read or mutate another account's rows. Deletes cascade
// child-first in explicit statements rather than relying on foreign key
// actions, matching the flat backend in [kvstore].
//
// Key Implementations:
//   - [UserRepository] : account persistence with unique email enforcement
//   - [CourseRepository] : course listing and cascading course deletion
//   - [LectureRepository] : lectures within a course, transcripts removed on delete
//   - [TranscriptRepository] : transcript rows with legacy kind migration at read time
//
// [Store] bundles the four repositories over one database handle and satisfies
// [models.Store], so callers stay backend-agnostic.
package repositories
