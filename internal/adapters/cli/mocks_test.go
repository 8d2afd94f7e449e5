package cli

import (
	"context"
	"time"

	"github.com/fatih/color"

	"github.com/example/sprintdesk/internal/core/enrich"
	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/primary"
)

func init() {
	color.NoColor = true
}

// ============================================================================
// Mock Implementations
// ============================================================================

// mockProjectService implements primary.ProjectService for testing
type mockProjectService struct {
	projects []models.Project
	owned    []models.Project
	member   []models.Project
	dueSoon  []models.Project
	members  []models.User
	focused  *models.Project
	fail     bool
	err      models.FieldErrors
	inputErr error

	lastInput    models.ProjectInput
	lastDueDays  int
	deletedID    int
	getCallCount int
}

func (m *mockProjectService) LoadProjects(ctx context.Context) []models.Project { return m.Projects() }

func (m *mockProjectService) GetProject(ctx context.Context, id int) *models.Project {
	m.getCallCount++
	if m.fail {
		return nil
	}
	p, ok := m.Project(id)
	if !ok {
		m.err = models.FieldErrors{"base": "Not found"}
		return nil
	}
	return &p
}

func (m *mockProjectService) CreateProject(ctx context.Context, input models.ProjectInput) (*models.Project, error) {
	m.lastInput = input
	if m.inputErr != nil {
		return nil, m.inputErr
	}
	if m.fail {
		return nil, nil
	}
	return &models.Project{ID: 42, Name: input.Name}, nil
}

func (m *mockProjectService) UpdateProject(ctx context.Context, id int, input models.ProjectInput) (*models.Project, error) {
	m.lastInput = input
	if m.inputErr != nil {
		return nil, m.inputErr
	}
	if m.fail {
		return nil, nil
	}
	return &models.Project{ID: id, Name: input.Name}, nil
}

func (m *mockProjectService) DeleteProject(ctx context.Context, id int) (bool, error) {
	if m.inputErr != nil {
		return false, m.inputErr
	}
	if m.fail {
		return false, nil
	}
	m.deletedID = id
	return true, nil
}

func (m *mockProjectService) LoadProjectUsers(ctx context.Context, projectID int) []models.User {
	return m.members
}

func (m *mockProjectService) Project(id int) (models.Project, bool) {
	for _, p := range m.projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

func (m *mockProjectService) Projects() []models.Project { return m.projects }

func (m *mockProjectService) OwnedProjects() []models.Project  { return m.owned }
func (m *mockProjectService) MemberProjects() []models.Project { return m.member }

func (m *mockProjectService) ProjectsDueWithin(days int, now time.Time) []models.Project {
	m.lastDueDays = days
	return m.dueSoon
}

func (m *mockProjectService) Focused() (models.Project, bool) {
	if m.focused == nil {
		return models.Project{}, false
	}
	return *m.focused, true
}

func (m *mockProjectService) IsLoading() bool         { return false }
func (m *mockProjectService) Err() models.FieldErrors { return m.err }

// mockSprintService implements primary.SprintService for testing
type mockSprintService struct {
	byProject map[int][]models.Sprint
	fail      bool
	err       models.FieldErrors
	inputErr  error

	lastInput models.SprintInput
}

func (m *mockSprintService) LoadSprints(ctx context.Context, projectID int) []models.Sprint {
	return m.byProject[projectID]
}

func (m *mockSprintService) GetSprint(ctx context.Context, projectID, sprintID int) *models.Sprint {
	s, ok := m.Sprint(sprintID)
	if !ok {
		return nil
	}
	return &s
}

func (m *mockSprintService) CreateSprint(ctx context.Context, projectID int, input models.SprintInput) (*models.Sprint, error) {
	m.lastInput = input
	if m.inputErr != nil {
		return nil, m.inputErr
	}
	if m.fail {
		return nil, nil
	}
	return &models.Sprint{ID: 7, ProjectID: projectID, Name: input.Name}, nil
}

func (m *mockSprintService) UpdateSprint(ctx context.Context, projectID, sprintID int, input models.SprintInput) (*models.Sprint, error) {
	m.lastInput = input
	if m.fail {
		return nil, nil
	}
	return &models.Sprint{ID: sprintID, ProjectID: projectID, Name: input.Name}, nil
}

func (m *mockSprintService) DeleteSprint(ctx context.Context, projectID, sprintID int) bool {
	return !m.fail
}

func (m *mockSprintService) Sprint(id int) (models.Sprint, bool) {
	for _, sprints := range m.byProject {
		for _, s := range sprints {
			if s.ID == id {
				return s, true
			}
		}
	}
	return models.Sprint{}, false
}

func (m *mockSprintService) SprintsByProject(projectID int) []models.Sprint {
	return m.byProject[projectID]
}

func (m *mockSprintService) IsLoading() bool         { return false }
func (m *mockSprintService) Err() models.FieldErrors { return m.err }

// mockFeatureService implements primary.FeatureService for testing
type mockFeatureService struct {
	bySprint map[int][]models.Feature
	parked   map[int][]models.Feature
	fail     bool
	err      models.FieldErrors
	moveErr  error

	lastMoveSprint *int
}

func (m *mockFeatureService) LoadFeatures(ctx context.Context, projectID int) []models.Feature {
	return m.FeaturesByProject(projectID)
}

func (m *mockFeatureService) GetFeature(ctx context.Context, projectID, featureID int) *models.Feature {
	f, ok := m.Feature(featureID)
	if !ok {
		return nil
	}
	return &f
}

func (m *mockFeatureService) CreateFeature(ctx context.Context, projectID int, input models.FeatureInput) (*models.Feature, error) {
	if m.fail {
		return nil, nil
	}
	return &models.Feature{ID: 9, ProjectID: projectID, Name: input.Name, SprintID: input.SprintID}, nil
}

func (m *mockFeatureService) UpdateFeature(ctx context.Context, projectID, featureID int, input models.FeatureInput) (*models.Feature, error) {
	if m.fail {
		return nil, nil
	}
	return &models.Feature{ID: featureID, ProjectID: projectID, Name: input.Name}, nil
}

func (m *mockFeatureService) MoveFeature(ctx context.Context, projectID, featureID, sprintID int) (*models.Feature, error) {
	if m.moveErr != nil {
		return nil, m.moveErr
	}
	if m.fail {
		return nil, nil
	}
	m.lastMoveSprint = &sprintID
	return &models.Feature{ID: featureID, ProjectID: projectID, SprintID: &sprintID}, nil
}

func (m *mockFeatureService) ParkFeature(ctx context.Context, projectID, featureID int) (*models.Feature, error) {
	if m.fail {
		return nil, nil
	}
	m.lastMoveSprint = nil
	return &models.Feature{ID: featureID, ProjectID: projectID}, nil
}

func (m *mockFeatureService) DeleteFeature(ctx context.Context, projectID, featureID int) bool {
	return !m.fail
}

func (m *mockFeatureService) Feature(id int) (models.Feature, bool) {
	for _, group := range []map[int][]models.Feature{m.bySprint, m.parked} {
		for _, features := range group {
			for _, f := range features {
				if f.ID == id {
					return f, true
				}
			}
		}
	}
	return models.Feature{}, false
}

func (m *mockFeatureService) FeaturesBySprint(sprintID int) []models.Feature {
	return m.bySprint[sprintID]
}

func (m *mockFeatureService) ParkingLot(projectID int) []models.Feature {
	return m.parked[projectID]
}

func (m *mockFeatureService) FeaturesByProject(projectID int) []models.Feature {
	var out []models.Feature
	for _, features := range m.bySprint {
		for _, f := range features {
			if f.ProjectID == projectID {
				out = append(out, f)
			}
		}
	}
	return append(out, m.parked[projectID]...)
}

func (m *mockFeatureService) IsLoading() bool         { return false }
func (m *mockFeatureService) Err() models.FieldErrors { return m.err }

// mockTaskService implements primary.TaskService for testing
type mockTaskService struct {
	tasks     map[int]models.Task
	byFeature map[int][]models.Task
	enriched  []enrich.EnrichedTask
	mine      []enrich.EnrichedTask
	fail      bool
	err       models.FieldErrors
	inputErr  error

	lastInput  models.TaskInput
	lastUpdate int
}

func (m *mockTaskService) LoadTasks(ctx context.Context) []models.Task { return nil }

func (m *mockTaskService) LoadFeatureTasks(ctx context.Context, projectID, featureID int) []models.Task {
	if m.fail {
		return nil
	}
	return m.byFeature[featureID]
}

func (m *mockTaskService) CreateTask(ctx context.Context, projectID, featureID int, input models.TaskInput) (*models.Task, error) {
	m.lastInput = input
	if m.inputErr != nil {
		return nil, m.inputErr
	}
	if m.fail {
		return nil, nil
	}
	return &models.Task{ID: 11, FeatureID: featureID, Name: input.Name}, nil
}

func (m *mockTaskService) UpdateTask(ctx context.Context, taskID int, input models.TaskInput) (*models.Task, error) {
	m.lastInput = input
	m.lastUpdate = taskID
	if m.inputErr != nil {
		return nil, m.inputErr
	}
	if m.fail {
		return nil, nil
	}
	return &models.Task{ID: taskID, Name: input.Name, Status: input.Status}, nil
}

func (m *mockTaskService) ToggleTask(ctx context.Context, taskID int) *models.Task {
	if m.fail {
		return nil
	}
	t := m.tasks[taskID]
	if t.Status.IsCompleted() {
		t.Status = models.TaskStatusNotStarted
	} else {
		t.Status = models.TaskStatusCompleted
	}
	return &t
}

func (m *mockTaskService) DeleteTask(ctx context.Context, taskID int) bool { return !m.fail }

func (m *mockTaskService) Task(id int) (models.Task, bool) {
	t, ok := m.tasks[id]
	return t, ok
}

func (m *mockTaskService) TasksByFeature(featureID int) []models.Task { return m.byFeature[featureID] }
func (m *mockTaskService) EnrichedTasks() []enrich.EnrichedTask       { return m.enriched }
func (m *mockTaskService) MyTasks() []enrich.EnrichedTask             { return m.mine }
func (m *mockTaskService) IsLoading() bool                            { return false }
func (m *mockTaskService) Err() models.FieldErrors                    { return m.err }

// mockUserService implements primary.UserService for testing
type mockUserService struct {
	users []models.User
}

func (m *mockUserService) LoadUsers(ctx context.Context) []models.User { return m.users }

func (m *mockUserService) User(id int) (models.User, bool) {
	for _, u := range m.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (m *mockUserService) Users() []models.User    { return m.users }
func (m *mockUserService) IsLoading() bool         { return false }
func (m *mockUserService) Err() models.FieldErrors { return nil }

// mockSessionService implements primary.SessionService for testing
type mockSessionService struct {
	user      *models.User
	loginErr  error
	logoutErr error
	resumeErr error

	lastCreds   models.Credentials
	loggedOut   bool
	resumeCalls int
}

func (m *mockSessionService) Restore(ctx context.Context) (*models.User, error) { return m.user, nil }

func (m *mockSessionService) Resume(ctx context.Context) (*models.User, error) {
	m.resumeCalls++
	return m.user, m.resumeErr
}

func (m *mockSessionService) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	m.lastCreds = creds
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	m.user = &models.User{ID: 1, Username: "ana", Email: creds.Email, FullName: "Ana Lima"}
	return m.user, nil
}

func (m *mockSessionService) Signup(ctx context.Context, signup models.Signup) (*models.User, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	m.user = &models.User{ID: 5, Username: signup.Username, Email: signup.Email}
	return m.user, nil
}

func (m *mockSessionService) Logout(ctx context.Context) error {
	m.loggedOut = true
	m.user = nil
	return m.logoutErr
}

func (m *mockSessionService) CurrentUser() (models.User, bool) {
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

func (m *mockSessionService) CurrentUserID() (int, bool) {
	if m.user == nil {
		return 0, false
	}
	return m.user.ID, true
}

// mockRefreshService implements primary.RefreshService for testing
type mockRefreshService struct {
	report     *primary.RefreshReport
	saveErr    error
	restoreErr error

	refreshCalls int
	saveCalls    int
}

func (m *mockRefreshService) RefreshAll(ctx context.Context) *primary.RefreshReport {
	m.refreshCalls++
	return m.report
}

func (m *mockRefreshService) SaveSnapshot(ctx context.Context) error {
	m.saveCalls++
	return m.saveErr
}

func (m *mockRefreshService) RestoreSnapshot(ctx context.Context) (*primary.RefreshReport, error) {
	if m.restoreErr != nil {
		return nil, m.restoreErr
	}
	return m.report, nil
}

// mockActivityService implements primary.ActivityService for testing
type mockActivityService struct {
	entries []*primary.ActivityEntry
	pruned  int
	err     error

	lastFilters primary.ActivityFilters
	lastDays    int
}

func (m *mockActivityService) ListActivity(ctx context.Context, filters primary.ActivityFilters) ([]*primary.ActivityEntry, error) {
	m.lastFilters = filters
	return m.entries, m.err
}

func (m *mockActivityService) PruneActivity(ctx context.Context, olderThanDays int) (int, error) {
	m.lastDays = olderThanDays
	return m.pruned, m.err
}
