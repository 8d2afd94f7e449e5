package enrich

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/example/sprintdesk/internal/core/crossref"
	"github.com/example/sprintdesk/internal/models"
)

// Engine produces enriched tasks from the project, feature and task stores.
// The full list is recomputed only when one of the three store versions
// changes or the clock moves to a new minute.
type Engine struct {
	projects crossref.Source[models.Project]
	features crossref.Source[models.Feature]
	tasks    crossref.Source[models.Task]
	now      func() time.Time
	format   Format

	mu       sync.Mutex
	key      memoKey
	valid    bool
	result   []EnrichedTask
	computes int
}

type memoKey struct {
	tasks, features, projects uint64
	minute                    int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithFormat sets the date layout and location.
func WithFormat(f Format) Option {
	return func(e *Engine) { e.format = f }
}

// NewEngine creates an engine over the given stores.
func NewEngine(
	projects crossref.Source[models.Project],
	features crossref.Source[models.Feature],
	tasks crossref.Source[models.Task],
	opts ...Option,
) *Engine {
	e := &Engine{
		projects: projects,
		features: features,
		tasks:    tasks,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EnrichedTasks returns every cached task enriched, ordered by ID.
func (e *Engine) EnrichedTasks() []EnrichedTask {
	now := e.now()
	key := memoKey{
		tasks:    e.tasks.Version(),
		features: e.features.Version(),
		projects: e.projects.Version(),
		minute:   now.Truncate(time.Minute).Unix(),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.valid && e.key == key {
		return slices.Clone(e.result)
	}

	tasks, tv := e.tasks.Snapshot()
	features, fv := e.features.Snapshot()
	projects, pv := e.projects.Snapshot()

	out := make([]EnrichedTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, EnrichTask(t, features, projects, now, e.format))
	}
	slices.SortFunc(out, func(a, b EnrichedTask) int { return cmp.Compare(a.ID, b.ID) })

	e.key = memoKey{tasks: tv, features: fv, projects: pv, minute: key.minute}
	e.valid = true
	e.result = out
	e.computes++
	return slices.Clone(out)
}

// Enrich returns the enriched view of a single cached task.
func (e *Engine) Enrich(taskID int) (EnrichedTask, bool) {
	for _, t := range e.EnrichedTasks() {
		if t.ID == taskID {
			return t, true
		}
	}
	return EnrichedTask{}, false
}

// MyEnrichedTasks returns the enriched tasks assigned to userID. With no
// authenticated user it returns an empty list.
func (e *Engine) MyEnrichedTasks(userID int, authenticated bool) []EnrichedTask {
	if !authenticated {
		return []EnrichedTask{}
	}
	mine := []EnrichedTask{}
	for _, t := range e.EnrichedTasks() {
		if t.IsAssignedTo(userID) {
			mine = append(mine, t)
		}
	}
	return mine
}

// SortForUser orders tasks assigned to userID first, then by start date,
// then by ID. Tasks without a start date sort last within their group.
func SortForUser(tasks []EnrichedTask, userID int) {
	slices.SortStableFunc(tasks, func(a, b EnrichedTask) int {
		am, bm := a.IsAssignedTo(userID), b.IsAssignedTo(userID)
		if am != bm {
			if am {
				return -1
			}
			return 1
		}
		as, bs := a.StartDate.Valid(), b.StartDate.Valid()
		if as != bs {
			if as {
				return -1
			}
			return 1
		}
		if c := a.StartDate.Compare(b.StartDate.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
