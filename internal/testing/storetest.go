package testing

import (
	"errors"
	"testing"

	"github.com/desertthunder/lectern/internal/models"
	"github.com/desertthunder/lectern/internal/shared"
)

// RunStoreConformance exercises the behavior both storage backends must share:
// unique emails, owner scoping, child-first cascades, and stable ordering.
// Each backend's test package calls it against a fresh store.
func RunStoreConformance(t *testing.T, store models.Store) {
	t.Helper()

	users := store.Users()
	courses := store.Courses()
	lectures := store.Lectures()
	transcripts := store.Transcripts()

	aliceID, err := users.Create("alice@example.com", "alice", "hash-a")
	if err != nil {
		t.Fatalf("Failed to create first user: %v", err)
	}
	bobID, err := users.Create("bob@example.com", "bob", "hash-b")
	if err != nil {
		t.Fatalf("Failed to create second user: %v", err)
	}

	t.Run("duplicate email rejected", func(t *testing.T) {
		if _, err := users.Create("alice@example.com", "other", "hash-c"); !errors.Is(err, shared.ErrDuplicateEmail) {
			t.Errorf("Expected duplicate email error, got %v", err)
		}
	})

	t.Run("GetByID strips password hash", func(t *testing.T) {
		user, err := users.GetByID(aliceID)
		if err != nil {
			t.Fatalf("Failed to get user: %v", err)
		}
		if user.PasswordHash() != "" {
			t.Error("Expected empty password hash on public lookup")
		}
		if user.Email() != "alice@example.com" {
			t.Errorf("Expected alice's email, got %s", user.Email())
		}
	})

	t.Run("GetByEmail keeps password hash", func(t *testing.T) {
		user, err := users.GetByEmail("alice@example.com")
		if err != nil {
			t.Fatalf("Failed to get user: %v", err)
		}
		if user.PasswordHash() != "hash-a" {
			t.Error("Expected password hash on credential lookup")
		}
	})

	t.Run("UpdateUsername", func(t *testing.T) {
		user, err := users.UpdateUsername(bobID, "robert")
		if err != nil {
			t.Fatalf("Failed to rename user: %v", err)
		}
		if user.Username() != "robert" {
			t.Errorf("Expected renamed user, got %s", user.Username())
		}

		if _, err := users.UpdateUsername(9999, "ghost"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("Expected not found error, got %v", err)
		}
	})

	mathID, err := courses.Create(aliceID, "Discrete Math")
	if err != nil {
		t.Fatalf("Failed to create course: %v", err)
	}
	bioID, err := courses.Create(aliceID, "Biology")
	if err != nil {
		t.Fatalf("Failed to create course: %v", err)
	}
	bobCourseID, err := courses.Create(bobID, "Chemistry")
	if err != nil {
		t.Fatalf("Failed to create course: %v", err)
	}

	t.Run("courses scoped to owner", func(t *testing.T) {
		list, err := courses.ListByUser(aliceID, models.SortByDate)
		if err != nil {
			t.Fatalf("Failed to list courses: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("Expected 2 courses, got %d", len(list))
		}
		for _, c := range list {
			if c.UserID() != aliceID {
				t.Errorf("Course %d leaked from another owner", c.ID())
			}
		}
	})

	t.Run("courses sort by date then by name", func(t *testing.T) {
		byDate, err := courses.ListByUser(aliceID, models.SortByDate)
		if err != nil {
			t.Fatalf("Failed to list courses: %v", err)
		}
		if byDate[0].ID() != bioID {
			t.Errorf("Expected newest course first, got %s", byDate[0].Name())
		}

		byName, err := courses.ListByUser(aliceID, models.SortByName)
		if err != nil {
			t.Fatalf("Failed to list courses: %v", err)
		}
		if byName[0].Name() != "Biology" || byName[1].Name() != "Discrete Math" {
			t.Errorf("Expected name order, got %s then %s", byName[0].Name(), byName[1].Name())
		}
	})

	lec1, err := lectures.Create(mathID, aliceID, "Graphs", 1)
	if err != nil {
		t.Fatalf("Failed to create lecture: %v", err)
	}
	lec2, err := lectures.Create(mathID, aliceID, "Trees", 2)
	if err != nil {
		t.Fatalf("Failed to create lecture: %v", err)
	}

	t.Run("lectures listed newest first", func(t *testing.T) {
		list, err := lectures.ListByCourse(mathID, aliceID)
		if err != nil {
			t.Fatalf("Failed to list lectures: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("Expected 2 lectures, got %d", len(list))
		}
		if list[0].ID() != lec2 {
			t.Errorf("Expected newest lecture first, got %s", list[0].Title())
		}
	})

	t.Run("lectures hidden from other users", func(t *testing.T) {
		list, err := lectures.ListByCourse(mathID, bobID)
		if err != nil {
			t.Fatalf("Failed to list lectures: %v", err)
		}
		if len(list) != 0 {
			t.Errorf("Expected no lectures for non-owner, got %d", len(list))
		}
	})

	tr1, err := transcripts.Create(lec1, aliceID, models.KindTranscript, "first segment", 0)
	if err != nil {
		t.Fatalf("Failed to create transcript: %v", err)
	}
	_, err = transcripts.Create(lec1, aliceID, models.KindNote, "remember this", 0)
	if err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}

	t.Run("transcripts listed in creation order", func(t *testing.T) {
		list, err := transcripts.ListByLecture(lec1, aliceID)
		if err != nil {
			t.Fatalf("Failed to list transcripts: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("Expected 2 transcripts, got %d", len(list))
		}
		if list[0].ID() != tr1 {
			t.Errorf("Expected oldest transcript first, got id %d", list[0].ID())
		}
		if list[1].Kind() != models.KindNote {
			t.Errorf("Expected note kind, got %s", list[1].Kind())
		}
	})

	t.Run("transcript update stamps updated_at", func(t *testing.T) {
		updated, err := transcripts.Update(tr1, aliceID, "first segment, revised")
		if err != nil {
			t.Fatalf("Failed to update transcript: %v", err)
		}
		if updated.Content() != "first segment, revised" {
			t.Errorf("Expected new content, got %q", updated.Content())
		}
		if updated.UpdatedAt() == nil {
			t.Error("Expected updated_at to be set")
		}

		if _, err := transcripts.Update(tr1, bobID, "hijack"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("Expected not found for foreign owner, got %v", err)
		}
	})

	t.Run("FindSummary", func(t *testing.T) {
		if _, err := transcripts.FindSummary(lec1, aliceID); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("Expected not found before a summary exists, got %v", err)
		}

		sumID, err := transcripts.Create(lec1, aliceID, models.KindSummary, "covered graphs", 0)
		if err != nil {
			t.Fatalf("Failed to create summary: %v", err)
		}

		summary, err := transcripts.FindSummary(lec1, aliceID)
		if err != nil {
			t.Fatalf("Failed to find summary: %v", err)
		}
		if summary.ID() != sumID {
			t.Errorf("Expected summary %d, got %d", sumID, summary.ID())
		}
	})

	t.Run("delete scoped by owner is a no-op", func(t *testing.T) {
		if err := transcripts.Delete(tr1, bobID); err != nil {
			t.Errorf("Expected nil for foreign delete, got %v", err)
		}
		if _, err := transcripts.Get(tr1, aliceID); err != nil {
			t.Errorf("Expected transcript to survive foreign delete, got %v", err)
		}

		if err := courses.Delete(mathID, bobID); err != nil {
			t.Errorf("Expected nil for foreign course delete, got %v", err)
		}
		list, err := lectures.ListByCourse(mathID, aliceID)
		if err != nil || len(list) != 2 {
			t.Errorf("Expected lectures to survive foreign delete, got %d (%v)", len(list), err)
		}
	})

	t.Run("lecture delete removes its transcripts", func(t *testing.T) {
		if err := lectures.Delete(lec2, aliceID); err != nil {
			t.Fatalf("Failed to delete lecture: %v", err)
		}
		list, err := lectures.ListByCourse(mathID, aliceID)
		if err != nil {
			t.Fatalf("Failed to list lectures: %v", err)
		}
		if len(list) != 1 {
			t.Errorf("Expected 1 lecture after delete, got %d", len(list))
		}
	})

	t.Run("course delete cascades to lectures and transcripts", func(t *testing.T) {
		if err := courses.Delete(mathID, aliceID); err != nil {
			t.Fatalf("Failed to delete course: %v", err)
		}

		list, err := courses.ListByUser(aliceID, models.SortByDate)
		if err != nil {
			t.Fatalf("Failed to list courses: %v", err)
		}
		if len(list) != 1 {
			t.Errorf("Expected 1 course after cascade, got %d", len(list))
		}

		orphans, err := transcripts.ListByLecture(lec1, aliceID)
		if err != nil {
			t.Fatalf("Failed to list transcripts: %v", err)
		}
		if len(orphans) != 0 {
			t.Errorf("Expected no orphaned transcripts, got %d", len(orphans))
		}

		bobCourses, err := courses.ListByUser(bobID, models.SortByDate)
		if err != nil {
			t.Fatalf("Failed to list courses: %v", err)
		}
		if len(bobCourses) != 1 || bobCourses[0].ID() != bobCourseID {
			t.Error("Expected bob's course untouched by alice's cascade")
		}
	})
}
