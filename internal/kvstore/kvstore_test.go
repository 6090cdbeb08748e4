package kvstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/lectern/internal/models"
	"github.com/desertthunder/lectern/internal/shared"
	tu "github.com/desertthunder/lectern/internal/testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return store
}

func TestStoreConformance(t *testing.T) {
	tu.RunStoreConformance(t, setupTestStore(t))
}

func TestOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	if _, err := Open(dir); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	tu.AssertDirExists(t, dir)
}

func TestMissingCollectionReadsEmpty(t *testing.T) {
	store := setupTestStore(t)

	courses, err := store.Courses().ListByUser(1, models.SortByDate)
	if err != nil {
		t.Fatalf("failed to list from empty store: %v", err)
	}
	if len(courses) != 0 {
		t.Errorf("expected no courses, got %d", len(courses))
	}
}

func TestIDsSeedFromExistingMax(t *testing.T) {
	store := setupTestStore(t)

	seeded := `[
		{"id": 1, "email": "old@example.com", "username": "old", "password_hash": "h", "created_at": "2024-01-01T00:00:00Z"},
		{"id": 7, "email": "older@example.com", "username": "older", "password_hash": "h", "created_at": "2024-01-02T00:00:00Z"}
	]`
	if err := os.WriteFile(filepath.Join(store.dir, usersFile), []byte(seeded), 0644); err != nil {
		t.Fatalf("failed to seed users file: %v", err)
	}

	id, err := store.Users().Create("new@example.com", "new", "h")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if id != 8 {
		t.Errorf("expected id 8 after max 7, got %d", id)
	}
}

func TestLegacyRecordsMigrateOnRead(t *testing.T) {
	store := setupTestStore(t)

	// records written before the kind field existed
	seeded := `[
		{"id": 1, "lecture_id": 1, "user_id": 1, "content": "[Note] ask about the exam", "timestamp": 0, "created_at": "2024-01-01T00:00:00Z"},
		{"id": 2, "lecture_id": 1, "user_id": 1, "content": "[Summary] three sorting algorithms", "timestamp": 0, "created_at": "2024-01-02T00:00:00Z"},
		{"id": 3, "lecture_id": 1, "user_id": 1, "content": "plain speech", "timestamp": 0, "created_at": "2024-01-03T00:00:00Z"}
	]`
	if err := os.WriteFile(filepath.Join(store.dir, transcriptsFile), []byte(seeded), 0644); err != nil {
		t.Fatalf("failed to seed transcripts file: %v", err)
	}

	list, err := store.Transcripts().ListByLecture(1, 1)
	if err != nil {
		t.Fatalf("failed to list transcripts: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 transcripts, got %d", len(list))
	}

	if list[0].Kind() != models.KindNote || list[0].Content() != "ask about the exam" {
		t.Errorf("expected migrated note, got %s %q", list[0].Kind(), list[0].Content())
	}
	if list[1].Kind() != models.KindSummary || list[1].Content() != "three sorting algorithms" {
		t.Errorf("expected migrated summary, got %s %q", list[1].Kind(), list[1].Content())
	}
	if list[2].Kind() != models.KindTranscript {
		t.Errorf("expected plain transcript, got %s", list[2].Kind())
	}

	summary, err := store.Transcripts().FindSummary(1, 1)
	if err != nil {
		t.Fatalf("failed to find legacy summary: %v", err)
	}
	if summary.ID() != 2 {
		t.Errorf("expected legacy summary id 2, got %d", summary.ID())
	}
}

func TestLegacyRecordKeepsKindThroughUpdate(t *testing.T) {
	store := setupTestStore(t)

	seeded := `[
		{"id": 1, "lecture_id": 1, "user_id": 1, "content": "[Summary] old summary", "timestamp": 0, "created_at": "2024-01-01T00:00:00Z"}
	]`
	if err := os.WriteFile(filepath.Join(store.dir, transcriptsFile), []byte(seeded), 0644); err != nil {
		t.Fatalf("failed to seed transcripts file: %v", err)
	}

	updated, err := store.Transcripts().Update(1, 1, "new summary text")
	if err != nil {
		t.Fatalf("failed to update transcript: %v", err)
	}
	if updated.Kind() != models.KindSummary {
		t.Errorf("expected summary kind after update, got %s", updated.Kind())
	}

	// The rewrite dropped the content prefix, so the kind must now live in
	// the record field for FindSummary to keep matching.
	records, err := readCollection[transcriptRecord](store, transcriptsFile)
	if err != nil {
		t.Fatalf("failed to read transcripts file: %v", err)
	}
	if len(records) != 1 || records[0].Kind != "summary" {
		t.Errorf("expected persisted kind 'summary', got %+v", records)
	}

	summary, err := store.Transcripts().FindSummary(1, 1)
	if err != nil {
		t.Fatalf("summary no longer found after update: %v", err)
	}
	if summary.Content() != "new summary text" {
		t.Errorf("expected updated content, got %q", summary.Content())
	}
}

func TestCorruptCollectionSurfacesError(t *testing.T) {
	store := setupTestStore(t)

	if err := os.WriteFile(filepath.Join(store.dir, coursesFile), []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	if _, err := store.Courses().ListByUser(1, models.SortByDate); err == nil {
		t.Error("expected parse error for corrupt collection")
	}
}

func TestDataPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	userID, err := store.Users().Create("a@example.com", "a", "h")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if _, err := store.Courses().Create(userID, "History"); err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	store.Close()

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}

	courses, err := reopened.Courses().ListByUser(userID, models.SortByDate)
	if err != nil {
		t.Fatalf("failed to list courses: %v", err)
	}
	if len(courses) != 1 || courses[0].Name() != "History" {
		t.Error("expected course to survive reopen")
	}
}

func TestGetByEmailNotFound(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.Users().GetByEmail("nobody@example.com"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}
