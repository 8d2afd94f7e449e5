package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/example/sprintdesk/internal/core/enrich"
	coretask "github.com/example/sprintdesk/internal/core/task"
	"github.com/example/sprintdesk/internal/ctxutil"
	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces
var (
	_ secondary.Backend            = (*mockBackend)(nil)
	_ secondary.ActivityWriter     = (*mockActivityWriter)(nil)
	_ secondary.SnapshotRepository = (*mockSnapshotRepository)(nil)
	_ secondary.SessionStore       = (*mockSessionStore)(nil)
	_ secondary.CookieCarrier      = (*mockSessionStore)(nil)
)

// fieldError is a transport failure carrying field errors, like the HTTP
// adapter's APIError.
type fieldError struct {
	fields models.FieldErrors
}

func (e *fieldError) Error() string                   { return "request failed: " + e.fields.String() }
func (e *fieldError) FieldErrors() models.FieldErrors { return e.fields }

var errNetwork = errors.New("connection refused")

// mockBackend implements secondary.Backend in memory. Any method can be made
// to fail by setting errs[<method name>].
type mockBackend struct {
	mu           sync.Mutex
	projects     map[int]models.Project
	sprints      map[int]models.Sprint
	features     map[int]models.Feature
	tasks        map[int]models.Task
	users        map[int]models.User
	projectUsers map[int][]models.User
	sessionUser  *models.User
	nextID       int
	errs         map[string]error
	calls        map[string]int
	lastMove     *models.FeatureMove
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		projects:     make(map[int]models.Project),
		sprints:      make(map[int]models.Sprint),
		features:     make(map[int]models.Feature),
		tasks:        make(map[int]models.Task),
		users:        make(map[int]models.User),
		projectUsers: make(map[int][]models.User),
		nextID:       1000,
		errs:         make(map[string]error),
		calls:        make(map[string]int),
	}
}

// begin records a call and returns the injected error, if any. Callers must
// hold m.mu.
func (m *mockBackend) begin(method string) error {
	m.calls[method]++
	return m.errs[method]
}

func (m *mockBackend) callCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *mockBackend) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

func (m *mockBackend) fail(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[method] = err
}

func (m *mockBackend) id() int {
	m.nextID++
	return m.nextID
}

func values[T any](src map[int]T, keep func(T) bool) []T {
	ids := make([]int, 0, len(src))
	for id := range src {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := []T{}
	for _, id := range ids {
		if keep == nil || keep(src[id]) {
			out = append(out, src[id])
		}
	}
	return out
}

func (m *mockBackend) ListProjects(ctx context.Context) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("ListProjects"); err != nil {
		return nil, err
	}
	return values(m.projects, nil), nil
}

func (m *mockBackend) GetProject(ctx context.Context, id int) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("GetProject"); err != nil {
		return nil, err
	}
	p, ok := m.projects[id]
	if !ok {
		return nil, &fieldError{fields: models.FieldErrors{"server": "Project not found"}}
	}
	return &p, nil
}

func (m *mockBackend) CreateProject(ctx context.Context, input models.ProjectInput) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("CreateProject"); err != nil {
		return nil, err
	}
	p := models.Project{ID: m.id(), Name: input.Name, Description: input.Description, DueDate: models.NewDate(input.DueDate.Time)}
	if m.sessionUser != nil {
		p.OwnerID = m.sessionUser.ID
	}
	m.projects[p.ID] = p
	return &p, nil
}

func (m *mockBackend) UpdateProject(ctx context.Context, id int, input models.ProjectInput) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("UpdateProject"); err != nil {
		return nil, err
	}
	p := m.projects[id]
	p.ID = id
	p.Name = input.Name
	p.Description = input.Description
	p.DueDate = models.NewDate(input.DueDate.Time)
	m.projects[id] = p
	return &p, nil
}

func (m *mockBackend) DeleteProject(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("DeleteProject"); err != nil {
		return err
	}
	delete(m.projects, id)
	return nil
}

func (m *mockBackend) ListSprints(ctx context.Context, projectID int) ([]models.Sprint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("ListSprints"); err != nil {
		return nil, err
	}
	return values(m.sprints, func(s models.Sprint) bool { return s.ProjectID == projectID }), nil
}

func (m *mockBackend) GetSprint(ctx context.Context, projectID, sprintID int) (*models.Sprint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("GetSprint"); err != nil {
		return nil, err
	}
	s, ok := m.sprints[sprintID]
	if !ok {
		return nil, &fieldError{fields: models.FieldErrors{"server": "Sprint not found"}}
	}
	return &s, nil
}

func (m *mockBackend) CreateSprint(ctx context.Context, projectID int, input models.SprintInput) (*models.Sprint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("CreateSprint"); err != nil {
		return nil, err
	}
	s := models.Sprint{ID: m.id(), ProjectID: projectID, Name: input.Name, StartDate: input.StartDate, EndDate: input.EndDate}
	m.sprints[s.ID] = s
	return &s, nil
}

func (m *mockBackend) UpdateSprint(ctx context.Context, projectID, sprintID int, input models.SprintInput) (*models.Sprint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("UpdateSprint"); err != nil {
		return nil, err
	}
	s := models.Sprint{ID: sprintID, ProjectID: projectID, Name: input.Name, StartDate: input.StartDate, EndDate: input.EndDate}
	m.sprints[sprintID] = s
	return &s, nil
}

func (m *mockBackend) DeleteSprint(ctx context.Context, projectID, sprintID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("DeleteSprint"); err != nil {
		return err
	}
	delete(m.sprints, sprintID)
	return nil
}

func (m *mockBackend) ListFeatures(ctx context.Context, projectID int) ([]models.Feature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("ListFeatures"); err != nil {
		return nil, err
	}
	return values(m.features, func(f models.Feature) bool { return f.ProjectID == projectID }), nil
}

func (m *mockBackend) GetFeature(ctx context.Context, projectID, featureID int) (*models.Feature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("GetFeature"); err != nil {
		return nil, err
	}
	f, ok := m.features[featureID]
	if !ok {
		return nil, &fieldError{fields: models.FieldErrors{"server": "Feature not found"}}
	}
	return &f, nil
}

func (m *mockBackend) CreateFeature(ctx context.Context, projectID int, input models.FeatureInput) (*models.Feature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("CreateFeature"); err != nil {
		return nil, err
	}
	f := models.Feature{ID: m.id(), ProjectID: projectID, SprintID: input.SprintID, Name: input.Name, Description: input.Description, Status: input.Status, Priority: input.Priority}
	m.features[f.ID] = f
	return &f, nil
}

func (m *mockBackend) UpdateFeature(ctx context.Context, projectID, featureID int, input models.FeatureInput) (*models.Feature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("UpdateFeature"); err != nil {
		return nil, err
	}
	f := models.Feature{ID: featureID, ProjectID: projectID, SprintID: input.SprintID, Name: input.Name, Description: input.Description, Status: input.Status, Priority: input.Priority}
	m.features[featureID] = f
	return &f, nil
}

func (m *mockBackend) MoveFeature(ctx context.Context, projectID, featureID int, move models.FeatureMove) (*models.Feature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("MoveFeature"); err != nil {
		return nil, err
	}
	m.lastMove = &move
	f := m.features[featureID]
	f.ID = featureID
	f.ProjectID = projectID
	f.SprintID = move.SprintID
	m.features[featureID] = f
	return &f, nil
}

func (m *mockBackend) DeleteFeature(ctx context.Context, projectID, featureID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("DeleteFeature"); err != nil {
		return err
	}
	delete(m.features, featureID)
	return nil
}

func (m *mockBackend) ListTasks(ctx context.Context) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("ListTasks"); err != nil {
		return nil, err
	}
	if m.sessionUser == nil {
		return []models.Task{}, nil
	}
	uid := m.sessionUser.ID
	return values(m.tasks, func(t models.Task) bool { return t.IsAssignedTo(uid) }), nil
}

func (m *mockBackend) ListFeatureTasks(ctx context.Context, projectID, featureID int) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("ListFeatureTasks"); err != nil {
		return nil, err
	}
	return values(m.tasks, func(t models.Task) bool { return t.FeatureID == featureID }), nil
}

func (m *mockBackend) CreateTask(ctx context.Context, projectID, featureID int, input models.TaskInput) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("CreateTask"); err != nil {
		return nil, err
	}
	t := models.Task{
		ID: m.id(), FeatureID: featureID, Name: input.Name, Description: input.Description,
		Status: input.Status, Priority: input.Priority, AssignedTo: input.AssignedTo,
		StartDate: input.StartDate, DueDate: input.DueDate,
	}
	if t.Status == "" {
		t.Status = models.TaskStatusNotStarted
	}
	m.tasks[t.ID] = t
	return &t, nil
}

func (m *mockBackend) UpdateTask(ctx context.Context, taskID int, input models.TaskInput) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("UpdateTask"); err != nil {
		return nil, err
	}
	t := m.tasks[taskID]
	t.ID = taskID
	t.Name = input.Name
	t.Description = input.Description
	t.Status = input.Status
	t.Priority = input.Priority
	t.AssignedTo = input.AssignedTo
	t.StartDate = input.StartDate
	t.DueDate = input.DueDate
	m.tasks[taskID] = t
	return &t, nil
}

func (m *mockBackend) ToggleTask(ctx context.Context, taskID int) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("ToggleTask"); err != nil {
		return nil, err
	}
	t, ok := m.tasks[taskID]
	if !ok {
		return nil, &fieldError{fields: models.FieldErrors{"server": "Task not found"}}
	}
	t.Status = coretask.ToggledStatus(t.Status)
	m.tasks[taskID] = t
	return &t, nil
}

func (m *mockBackend) DeleteTask(ctx context.Context, taskID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("DeleteTask"); err != nil {
		return err
	}
	delete(m.tasks, taskID)
	return nil
}

func (m *mockBackend) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("ListUsers"); err != nil {
		return nil, err
	}
	return values(m.users, nil), nil
}

func (m *mockBackend) ListProjectUsers(ctx context.Context, projectID int) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("ListProjectUsers"); err != nil {
		return nil, err
	}
	return append([]models.User{}, m.projectUsers[projectID]...), nil
}

func (m *mockBackend) Restore(ctx context.Context) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("Restore"); err != nil {
		return nil, err
	}
	if m.sessionUser == nil {
		return nil, nil
	}
	u := *m.sessionUser
	return &u, nil
}

func (m *mockBackend) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("Login"); err != nil {
		return nil, err
	}
	for _, u := range m.users {
		if u.Email == creds.Email && creds.Password == "password" {
			m.sessionUser = &u
			return &u, nil
		}
	}
	return nil, &fieldError{fields: models.FieldErrors{"credential": "Invalid credentials"}}
}

func (m *mockBackend) Signup(ctx context.Context, signup models.Signup) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("Signup"); err != nil {
		return nil, err
	}
	u := models.User{ID: m.id(), Username: signup.Username, Email: signup.Email}
	m.users[u.ID] = u
	m.sessionUser = &u
	return &u, nil
}

func (m *mockBackend) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("Logout"); err != nil {
		return err
	}
	m.sessionUser = nil
	return nil
}

// mockActivityWriter implements secondary.ActivityWriter for testing.
type mockActivityWriter struct {
	mu      sync.Mutex
	entries []string
	err     error
}

func (m *mockActivityWriter) record(entry string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockActivityWriter) LogCreate(ctx context.Context, entityType string, entityID int) error {
	return m.record(activityKey(ctx, "create", entityType, entityID, ""))
}

func (m *mockActivityWriter) LogUpdate(ctx context.Context, entityType string, entityID int, detail string) error {
	return m.record(activityKey(ctx, "update", entityType, entityID, detail))
}

func (m *mockActivityWriter) LogDelete(ctx context.Context, entityType string, entityID int) error {
	return m.record(activityKey(ctx, "delete", entityType, entityID, ""))
}

// activityKey renders an entry as "<actor> <action> <type> <id>[ <detail>]".
func activityKey(ctx context.Context, action, entityType string, entityID int, detail string) string {
	key := fmt.Sprintf("%s %s %s %d", ctxutil.ActorFromContext(ctx), action, entityType, entityID)
	if detail != "" {
		key += " " + detail
	}
	return key
}

func (m *mockActivityWriter) all() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.entries...)
}

// mockSnapshotRepository implements secondary.SnapshotRepository for testing.
type mockSnapshotRepository struct {
	saved   *secondary.Snapshot
	saveErr error
	loadErr error
}

func (m *mockSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot *secondary.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = snapshot
	return nil
}

func (m *mockSnapshotRepository) LoadSnapshot(ctx context.Context) (*secondary.Snapshot, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.saved == nil {
		return nil, secondary.ErrNoSnapshot
	}
	return m.saved, nil
}

// ============================================================================
// Fixtures
// ============================================================================

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func intPtr(i int) *int { return &i }

func day(offset int) models.Date {
	return models.NewDate(fixedNow.AddDate(0, 0, offset))
}

// testEnv bundles every service over one cache and one mock backend.
type testEnv struct {
	backend  *mockBackend
	activity *mockActivityWriter
	cache    *Cache
	session  *SessionImpl
	projects *ProjectServiceImpl
	sprints  *SprintServiceImpl
	features *FeatureServiceImpl
	tasks    *TaskServiceImpl
	users    *UserServiceImpl
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := newMockBackend()
	activity := &mockActivityWriter{}
	cache := NewCache(enrich.WithClock(func() time.Time { return fixedNow }))
	session := NewSession(backend, nil)

	projects := NewProjectService(backend, backend, cache, session, activity, nil)
	projects.now = func() time.Time { return fixedNow }

	return &testEnv{
		backend:  backend,
		activity: activity,
		cache:    cache,
		session:  session,
		projects: projects,
		sprints:  NewSprintService(backend, cache, session, activity, nil),
		features: NewFeatureService(backend, cache, session, activity, nil),
		tasks:    NewTaskService(backend, cache, session, activity, nil),
		users:    NewUserService(backend, cache, nil),
	}
}

// login makes user the session user on both sides.
func (e *testEnv) login(user models.User) {
	e.backend.mu.Lock()
	e.backend.users[user.ID] = user
	e.backend.sessionUser = &user
	e.backend.mu.Unlock()
	e.session.Adopt(&user)
}

// mockSessionStore implements secondary.SessionStore and
// secondary.CookieCarrier for testing.
type mockSessionStore struct {
	saved   map[string]map[string]string
	jar     map[string]string
	cleared int
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{saved: map[string]map[string]string{}, jar: map[string]string{}}
}

func (m *mockSessionStore) SaveCookies(ctx context.Context, baseURL string, cookies map[string]string) error {
	m.saved[baseURL] = cookies
	return nil
}

func (m *mockSessionStore) LoadCookies(ctx context.Context, baseURL string) (map[string]string, error) {
	if c, ok := m.saved[baseURL]; ok {
		return c, nil
	}
	return map[string]string{}, nil
}

func (m *mockSessionStore) ClearCookies(ctx context.Context, baseURL string) error {
	delete(m.saved, baseURL)
	m.cleared++
	return nil
}

func (m *mockSessionStore) SessionCookies() map[string]string {
	return m.jar
}

func (m *mockSessionStore) SetSessionCookies(cookies map[string]string) {
	for k, v := range cookies {
		m.jar[k] = v
	}
}
