package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/primary"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// ErrIncompleteCache is returned by SaveSnapshot while any store holds a load
// error. The previous snapshot stays in place.
var ErrIncompleteCache = errors.New("cache has failed loads")

// RefreshServiceImpl implements the RefreshService interface.
type RefreshServiceImpl struct {
	backend   secondary.Backend
	cache     *Cache
	session   *SessionImpl
	snapshots secondary.SnapshotRepository
	baseURL   string
	logger    *log.Logger
	now       func() time.Time
}

// NewRefreshService creates a new RefreshService with injected dependencies.
// snapshots may be nil, in which case SaveSnapshot and RestoreSnapshot fail.
func NewRefreshService(
	backend secondary.Backend,
	cache *Cache,
	session *SessionImpl,
	snapshots secondary.SnapshotRepository,
	baseURL string,
	logger *log.Logger,
) *RefreshServiceImpl {
	return &RefreshServiceImpl{
		backend:   backend,
		cache:     cache,
		session:   session,
		snapshots: snapshots,
		baseURL:   baseURL,
		logger:    discardIfNil(logger),
		now:       time.Now,
	}
}

// refreshRun collects the outcome of the concurrent branches of one refresh.
type refreshRun struct {
	mu       sync.Mutex
	report   *primary.RefreshReport
	failures map[string]error
}

func (r *refreshRun) fail(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[name] = errors.Join(r.failures[name], err)
}

func (r *refreshRun) count(field *int, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*field += n
}

// RefreshAll loads projects, tasks and users concurrently. Once projects
// resolve, the sprints and features of every project are loaded
// concurrently. A failing branch records an error on its store and never
// aborts its siblings.
func (s *RefreshServiceImpl) RefreshAll(ctx context.Context) *primary.RefreshReport {
	run := &refreshRun{
		report:   &primary.RefreshReport{StartedAt: s.now()},
		failures: map[string]error{},
	}
	for _, slot := range s.slots() {
		slot.SetLoading(true)
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		projects, err := s.backend.ListProjects(ctx)
		if err != nil {
			s.logger.Printf("refresh projects: %v", err)
			run.fail(StoreProjects, err)
			return
		}
		merge(s.cache.Projects, projects, s.logger)
		run.count(&run.report.Projects, len(projects))
		s.fanOut(ctx, run, projects)
	}()
	go func() {
		defer wg.Done()
		tasks, err := s.backend.ListTasks(ctx)
		if err != nil {
			s.logger.Printf("refresh tasks: %v", err)
			run.fail(StoreTasks, err)
			return
		}
		merge(s.cache.Tasks, tasks, s.logger)
		run.count(&run.report.Tasks, len(tasks))
	}()
	go func() {
		defer wg.Done()
		users, err := s.backend.ListUsers(ctx)
		if err != nil {
			s.logger.Printf("refresh users: %v", err)
			run.fail(StoreUsers, err)
			return
		}
		merge(s.cache.Users, users, s.logger)
		run.count(&run.report.Users, len(users))
	}()
	wg.Wait()

	run.report.Failures = map[string]models.FieldErrors{}
	for name, slot := range s.slots() {
		if err, failed := run.failures[name]; failed {
			fields := failureFields(err)
			slot.SetError(fields)
			run.report.Failures[name] = fields
		} else {
			slot.SetError(nil)
		}
		slot.SetLoading(false)
	}
	run.report.FinishedAt = s.now()
	return run.report
}

// fanOut loads the sprints and features of each project.
func (s *RefreshServiceImpl) fanOut(ctx context.Context, run *refreshRun, projects []models.Project) {
	var wg sync.WaitGroup
	for _, p := range projects {
		if p.ID <= 0 {
			continue
		}
		wg.Add(2)
		go func(pid int) {
			defer wg.Done()
			sprints, err := s.backend.ListSprints(ctx, pid)
			if err != nil {
				s.logger.Printf("refresh sprints of project %d: %v", pid, err)
				run.fail(StoreSprints, fmt.Errorf("project %d: %w", pid, err))
				return
			}
			merge(s.cache.Sprints, sprints, s.logger)
			run.count(&run.report.Sprints, len(sprints))
		}(p.ID)
		go func(pid int) {
			defer wg.Done()
			features, err := s.backend.ListFeatures(ctx, pid)
			if err != nil {
				s.logger.Printf("refresh features of project %d: %v", pid, err)
				run.fail(StoreFeatures, fmt.Errorf("project %d: %w", pid, err))
				return
			}
			merge(s.cache.Features, features, s.logger)
			run.count(&run.report.Features, len(features))
		}(p.ID)
	}
	wg.Wait()
}

func (s *RefreshServiceImpl) slots() map[string]errorSlot {
	return map[string]errorSlot{
		StoreProjects: s.cache.Projects,
		StoreSprints:  s.cache.Sprints,
		StoreFeatures: s.cache.Features,
		StoreTasks:    s.cache.Tasks,
		StoreUsers:    s.cache.Users,
	}
}

// SaveSnapshot persists the cache and session user for offline use.
func (s *RefreshServiceImpl) SaveSnapshot(ctx context.Context) error {
	if s.snapshots == nil {
		return fmt.Errorf("no snapshot store configured")
	}
	if failed := s.cache.Errors(); len(failed) > 0 {
		return fmt.Errorf("snapshot not updated: %w (%d stores)", ErrIncompleteCache, len(failed))
	}
	snap := s.cache.Export()
	if s.session != nil {
		if user, ok := s.session.CurrentUser(); ok {
			snap.SessionUser = &user
		}
	}
	snap.BaseURL = s.baseURL
	snap.SavedAt = s.now().UTC()

	if err := s.snapshots.SaveSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// RestoreSnapshot loads the last saved cache and session user without
// network access.
func (s *RefreshServiceImpl) RestoreSnapshot(ctx context.Context) (*primary.RefreshReport, error) {
	if s.snapshots == nil {
		return nil, fmt.Errorf("no snapshot store configured")
	}
	started := s.now()
	snap, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		if errors.Is(err, secondary.ErrNoSnapshot) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snap.BaseURL != "" && s.baseURL != "" && snap.BaseURL != s.baseURL {
		return nil, fmt.Errorf("snapshot was saved for %s, not %s; run refresh first", snap.BaseURL, s.baseURL)
	}

	if err := s.cache.Import(snap); err != nil {
		s.logger.Printf("warning: snapshot contained invalid records: %v", err)
	}
	if s.session != nil {
		s.session.Adopt(snap.SessionUser)
	}

	return &primary.RefreshReport{
		Projects:   len(snap.Projects),
		Sprints:    len(snap.Sprints),
		Features:   len(snap.Features),
		Tasks:      len(snap.Tasks),
		Users:      len(snap.Users),
		Failures:   map[string]models.FieldErrors{},
		StartedAt:  started,
		FinishedAt: s.now(),
	}, nil
}

var _ primary.RefreshService = (*RefreshServiceImpl)(nil)
