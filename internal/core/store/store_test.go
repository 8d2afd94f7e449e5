package store

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/example/sprintdesk/internal/models"
)

func intPtr(i int) *int { return &i }

func TestStore_LoadManyIsIdempotent(t *testing.T) {
	s := New[models.Feature]("features")
	batch := []models.Feature{
		{ID: 10, ProjectID: 1, Name: "Login"},
		{ID: 11, ProjectID: 1, Name: "Signup", SprintID: intPtr(5)},
	}

	if err := s.LoadMany(batch); err != nil {
		t.Fatalf("LoadMany failed: %v", err)
	}
	once, _ := s.Snapshot()

	if err := s.LoadMany(batch); err != nil {
		t.Fatalf("LoadMany failed: %v", err)
	}
	twice, _ := s.Snapshot()

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("state changed after reloading the same batch:\n once: %v\ntwice: %v", once, twice)
	}
}

func TestStore_LastWriteWins(t *testing.T) {
	s := New[models.Task]("tasks")

	if err := s.UpsertOne(models.Task{ID: 100, Name: "first"}); err != nil {
		t.Fatalf("UpsertOne failed: %v", err)
	}
	if err := s.UpsertOne(models.Task{ID: 100, Name: "second"}); err != nil {
		t.Fatalf("UpsertOne failed: %v", err)
	}

	got, ok := s.Get(100)
	if !ok {
		t.Fatal("expected task 100 to be cached")
	}
	if got.Name != "second" {
		t.Errorf("expected name 'second', got %q", got.Name)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 record, got %d", s.Len())
	}
}

func TestStore_LoadManyLastWriteWinsWithinBatch(t *testing.T) {
	s := New[models.Task]("tasks")
	err := s.LoadMany([]models.Task{{ID: 1, Name: "a"}, {ID: 1, Name: "b"}})
	if err != nil {
		t.Fatalf("LoadMany failed: %v", err)
	}
	got, _ := s.Get(1)
	if got.Name != "b" {
		t.Errorf("expected later record to win, got %q", got.Name)
	}
}

func TestStore_PartialLoadIsNonDestructive(t *testing.T) {
	s := New[models.Feature]("features")
	projectB := models.Feature{ID: 20, ProjectID: 2, Name: "Billing"}

	if err := s.LoadMany([]models.Feature{projectB}); err != nil {
		t.Fatalf("LoadMany failed: %v", err)
	}
	if err := s.LoadMany([]models.Feature{{ID: 10, ProjectID: 1, Name: "Login"}}); err != nil {
		t.Fatalf("LoadMany failed: %v", err)
	}

	got, ok := s.Get(20)
	if !ok {
		t.Fatal("project B feature was evicted by project A load")
	}
	if !reflect.DeepEqual(got, projectB) {
		t.Errorf("project B feature altered: got %+v", got)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 features, got %d", s.Len())
	}
}

func TestStore_FocusFollowsUpserts(t *testing.T) {
	s := New[models.Project]("projects")
	p := models.Project{ID: 1, Name: "Alpha"}

	if err := s.SetFocused(&p); err != nil {
		t.Fatalf("SetFocused failed: %v", err)
	}
	if _, ok := s.Get(1); !ok {
		t.Error("SetFocused should upsert the record")
	}

	if err := s.UpsertOne(models.Project{ID: 1, Name: "Alpha v2"}); err != nil {
		t.Fatalf("UpsertOne failed: %v", err)
	}
	focused, ok := s.Focused()
	if !ok || focused.Name != "Alpha v2" {
		t.Errorf("expected focus to follow upsert, got %+v (ok=%v)", focused, ok)
	}

	if err := s.UpsertOne(models.Project{ID: 2, Name: "Beta"}); err != nil {
		t.Fatalf("UpsertOne failed: %v", err)
	}
	focused, _ = s.Focused()
	if focused.ID != 1 {
		t.Errorf("upsert of another ID moved focus to %d", focused.ID)
	}

	if err := s.SetFocused(nil); err != nil {
		t.Fatalf("SetFocused(nil) failed: %v", err)
	}
	if _, ok := s.Focused(); ok {
		t.Error("expected focus cleared")
	}
	if s.Len() != 2 {
		t.Errorf("clearing focus must not remove records, got %d", s.Len())
	}
}

func TestStore_RemoveClearsFocus(t *testing.T) {
	s := New[models.Sprint]("sprints")
	sp := models.Sprint{ID: 5, ProjectID: 1}
	_ = s.SetFocused(&sp)
	_ = s.UpsertOne(models.Sprint{ID: 6, ProjectID: 1})

	s.Remove(5)

	if _, ok := s.Get(5); ok {
		t.Error("expected sprint 5 removed")
	}
	if _, ok := s.Focused(); ok {
		t.Error("expected focus cleared after removing focused record")
	}
	if _, ok := s.Get(6); !ok {
		t.Error("sprint 6 should remain")
	}
}

func TestStore_RemoveUnknownIsNoop(t *testing.T) {
	s := New[models.Sprint]("sprints")
	_ = s.UpsertOne(models.Sprint{ID: 5})
	before := s.Version()

	s.Remove(99)

	if s.Version() != before {
		t.Error("removing an unknown id should not bump the version")
	}
}

func TestStore_RejectsMissingID(t *testing.T) {
	s := New[models.Task]("tasks")

	err := s.UpsertOne(models.Task{Name: "no id"})
	if !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	if s.Len() != 0 {
		t.Error("invalid record must not enter the map")
	}

	err = s.LoadMany([]models.Task{{ID: 1}, {Name: "bad"}, {ID: 2}})
	var invalid *InvalidRecordError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRecordError, got %v", err)
	}
	if invalid.Count != 1 {
		t.Errorf("expected 1 rejected record, got %d", invalid.Count)
	}
	if s.Len() != 2 {
		t.Errorf("valid records should still load, got %d", s.Len())
	}

	if err := s.SetFocused(&models.Task{}); !errors.Is(err, ErrMissingID) {
		t.Errorf("SetFocused with missing id: expected ErrMissingID, got %v", err)
	}
}

func TestStore_VersionTracksMappingOnly(t *testing.T) {
	s := New[models.User]("users")
	v0 := s.Version()

	s.SetLoading(true)
	s.SetError(models.BaseError())
	if s.Version() != v0 {
		t.Error("bookkeeping must not bump the version")
	}
	if !s.IsLoading() {
		t.Error("expected loading flag set")
	}
	if s.Err()[models.ServerErrorKey] == "" {
		t.Error("expected error slot set")
	}

	_ = s.UpsertOne(models.User{ID: 1})
	if s.Version() == v0 {
		t.Error("upsert must bump the version")
	}

	v1 := s.Version()
	_ = s.LoadMany(nil)
	if s.Version() != v1 {
		t.Error("empty load must not bump the version")
	}
}

func TestStore_ConcurrentLoads(t *testing.T) {
	s := New[models.Task]("tasks")
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			batch := make([]models.Task, 0, 50)
			for i := 1; i <= 50; i++ {
				batch = append(batch, models.Task{ID: w*100 + i})
			}
			_ = s.LoadMany(batch)
			_ = s.All()
		}(w)
	}
	wg.Wait()

	if s.Len() != 400 {
		t.Errorf("expected 400 tasks, got %d", s.Len())
	}
}
