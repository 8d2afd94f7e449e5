// Package wire provides dependency injection for sprintdesk.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/sprintdesk/internal/adapters/cli"
	"github.com/example/sprintdesk/internal/adapters/httpapi"
	"github.com/example/sprintdesk/internal/adapters/sqlite"
	"github.com/example/sprintdesk/internal/app"
	"github.com/example/sprintdesk/internal/config"
	"github.com/example/sprintdesk/internal/core/enrich"
	"github.com/example/sprintdesk/internal/db"
	"github.com/example/sprintdesk/internal/ports/primary"
)

var (
	cfg             *config.Config
	dates           enrich.Format
	session         *app.SessionImpl
	projectService  primary.ProjectService
	sprintService   primary.SprintService
	featureService  primary.FeatureService
	taskService     primary.TaskService
	userService     primary.UserService
	refreshService  primary.RefreshService
	activityService primary.ActivityService
	verbose         bool
	once            sync.Once
)

// SetVerbose routes request and cache diagnostics to stderr. It must be
// called before the first service is requested.
func SetVerbose(v bool) {
	verbose = v
}

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// DateFormat returns the configured date rendering.
func DateFormat() enrich.Format {
	once.Do(initServices)
	return dates
}

// SessionService returns the singleton SessionService instance.
func SessionService() primary.SessionService {
	once.Do(initServices)
	return session
}

// ProjectService returns the singleton ProjectService instance.
func ProjectService() primary.ProjectService {
	once.Do(initServices)
	return projectService
}

// SprintService returns the singleton SprintService instance.
func SprintService() primary.SprintService {
	once.Do(initServices)
	return sprintService
}

// FeatureService returns the singleton FeatureService instance.
func FeatureService() primary.FeatureService {
	once.Do(initServices)
	return featureService
}

// TaskService returns the singleton TaskService instance.
func TaskService() primary.TaskService {
	once.Do(initServices)
	return taskService
}

// UserService returns the singleton UserService instance.
func UserService() primary.UserService {
	once.Do(initServices)
	return userService
}

// RefreshService returns the singleton RefreshService instance.
func RefreshService() primary.RefreshService {
	once.Do(initServices)
	return refreshService
}

// ActivityService returns the singleton ActivityService instance.
func ActivityService() primary.ActivityService {
	once.Do(initServices)
	return activityService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(io.Discard, "", 0)
	if verbose {
		logger = log.New(os.Stderr, "sprintdesk: ", log.LstdFlags)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	dates = enrich.Format{DateLayout: cfg.DateLayout, Location: loc}

	cachePath, err := cfg.CachePath()
	if err != nil {
		log.Fatalf("failed to resolve cache path: %v", err)
	}
	db.SetPath(cachePath)
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Secondary adapters: REST backend plus the local SQLite cache
	client, err := httpapi.New(cfg.BaseURL, cfg.Timeout, httpapi.WithLogger(logger))
	if err != nil {
		log.Fatalf("failed to create backend client: %v", err)
	}
	activityRepo := sqlite.NewActivityRepository(database)
	activityWriter := sqlite.NewActivityWriterAdapter(activityRepo)
	snapshots := sqlite.NewSnapshotRepository(database)

	cache := app.NewCache(enrich.WithFormat(dates))
	session = app.NewSession(client, logger).
		WithPersistence(sqlite.NewSessionStore(database), client, client.BaseURL())

	// Services (primary ports implementation)
	projectService = app.NewProjectService(client, client, cache, session, activityWriter, logger)
	sprintService = app.NewSprintService(client, cache, session, activityWriter, logger)
	featureService = app.NewFeatureService(client, cache, session, activityWriter, logger)
	taskService = app.NewTaskService(client, cache, session, activityWriter, logger)
	userService = app.NewUserService(client, cache, logger)
	refreshService = app.NewRefreshService(client, cache, session, snapshots, client.BaseURL(), logger)
	activityService = app.NewActivityService(activityRepo)
}

// SessionAdapter returns a new SessionAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func SessionAdapter() *cliadapter.SessionAdapter {
	return SessionAdapterWithOutput(os.Stdout)
}

// SessionAdapterWithOutput returns a new SessionAdapter writing to the given output.
func SessionAdapterWithOutput(out io.Writer) *cliadapter.SessionAdapter {
	once.Do(initServices)
	return cliadapter.NewSessionAdapter(session, out)
}

// RefreshAdapter returns a new RefreshAdapter writing to stdout.
func RefreshAdapter() *cliadapter.RefreshAdapter {
	return RefreshAdapterWithOutput(os.Stdout)
}

// RefreshAdapterWithOutput returns a new RefreshAdapter writing to the given output.
func RefreshAdapterWithOutput(out io.Writer) *cliadapter.RefreshAdapter {
	once.Do(initServices)
	return cliadapter.NewRefreshAdapter(refreshService, session, out)
}

// ProjectAdapter returns a new ProjectAdapter writing to stdout.
func ProjectAdapter() *cliadapter.ProjectAdapter {
	return ProjectAdapterWithOutput(os.Stdout)
}

// ProjectAdapterWithOutput returns a new ProjectAdapter writing to the given output.
func ProjectAdapterWithOutput(out io.Writer) *cliadapter.ProjectAdapter {
	once.Do(initServices)
	return cliadapter.NewProjectAdapter(projectService, dates, out)
}

// BoardAdapter returns a new BoardAdapter writing to stdout.
func BoardAdapter() *cliadapter.BoardAdapter {
	return BoardAdapterWithOutput(os.Stdout)
}

// BoardAdapterWithOutput returns a new BoardAdapter writing to the given output.
func BoardAdapterWithOutput(out io.Writer) *cliadapter.BoardAdapter {
	once.Do(initServices)
	return cliadapter.NewBoardAdapter(sprintService, featureService, taskService, dates, out)
}

// TaskAdapter returns a new TaskAdapter writing to stdout.
func TaskAdapter() *cliadapter.TaskAdapter {
	return TaskAdapterWithOutput(os.Stdout)
}

// TaskAdapterWithOutput returns a new TaskAdapter writing to the given output.
func TaskAdapterWithOutput(out io.Writer) *cliadapter.TaskAdapter {
	once.Do(initServices)
	return cliadapter.NewTaskAdapter(taskService, out)
}

// UsersAdapter returns a new UsersAdapter writing to stdout.
func UsersAdapter() *cliadapter.UsersAdapter {
	once.Do(initServices)
	return cliadapter.NewUsersAdapter(userService, session, os.Stdout)
}

// ActivityAdapter returns a new ActivityAdapter writing to stdout.
func ActivityAdapter() *cliadapter.ActivityAdapter {
	once.Do(initServices)
	return cliadapter.NewActivityAdapter(activityService, os.Stdout)
}
