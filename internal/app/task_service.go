package app

import (
	"context"
	"fmt"
	"log"

	"github.com/example/sprintdesk/internal/core/enrich"
	coretask "github.com/example/sprintdesk/internal/core/task"
	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/primary"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	api      secondary.TaskAPI
	cache    *Cache
	session  *SessionImpl
	activity activityLog
	logger   *log.Logger
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(
	api secondary.TaskAPI,
	cache *Cache,
	session *SessionImpl,
	activity secondary.ActivityWriter,
	logger *log.Logger,
) *TaskServiceImpl {
	logger = discardIfNil(logger)
	return &TaskServiceImpl{
		api:      api,
		cache:    cache,
		session:  session,
		activity: activityLog{writer: activity, session: session, logger: logger},
		logger:   logger,
	}
}

// LoadTasks fetches the tasks assigned to the session user.
func (s *TaskServiceImpl) LoadTasks(ctx context.Context) []models.Task {
	tasks, ok := request(s.cache.Tasks, s.logger, "load tasks", func() ([]models.Task, error) {
		return s.api.ListTasks(ctx)
	})
	if !ok {
		return nil
	}
	merge(s.cache.Tasks, tasks, s.logger)
	return tasks
}

// LoadFeatureTasks fetches every task of a feature.
func (s *TaskServiceImpl) LoadFeatureTasks(ctx context.Context, projectID, featureID int) []models.Task {
	tasks, ok := request(s.cache.Tasks, s.logger, fmt.Sprintf("load tasks of feature %d", featureID), func() ([]models.Task, error) {
		return s.api.ListFeatureTasks(ctx, projectID, featureID)
	})
	if !ok {
		return nil
	}
	merge(s.cache.Tasks, tasks, s.logger)
	return tasks
}

// CreateTask validates and creates a task under a cached feature.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, projectID, featureID int, input models.TaskInput) (*models.Task, error) {
	if err := coretask.ValidateInput(input).Error(); err != nil {
		return nil, err
	}
	guardCtx := coretask.CreateTaskContext{ProjectID: projectID, FeatureID: featureID}
	if f, ok := s.cache.Features.Get(featureID); ok {
		guardCtx.FeatureExists = true
		guardCtx.FeatureProjectID = f.ProjectID
	}
	if err := coretask.CanCreateTask(guardCtx).Error(); err != nil {
		return nil, err
	}

	task, ok := request(s.cache.Tasks, s.logger, "create task", func() (*models.Task, error) {
		t, err := s.api.CreateTask(ctx, projectID, featureID, input)
		if err != nil {
			return nil, err
		}
		return t, s.cache.Tasks.UpsertOne(*t)
	})
	if !ok {
		return nil, nil
	}
	s.activity.created(ctx, "task", task.ID)
	return task, nil
}

// UpdateTask validates and updates a task.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, taskID int, input models.TaskInput) (*models.Task, error) {
	if err := coretask.ValidateInput(input).Error(); err != nil {
		return nil, err
	}

	task, ok := request(s.cache.Tasks, s.logger, fmt.Sprintf("update task %d", taskID), func() (*models.Task, error) {
		t, err := s.api.UpdateTask(ctx, taskID, input)
		if err != nil {
			return nil, err
		}
		return t, s.cache.Tasks.UpsertOne(*t)
	})
	if !ok {
		return nil, nil
	}
	s.activity.updated(ctx, "task", task.ID, "")
	return task, nil
}

// ToggleTask flips a task between Completed and Not Started.
func (s *TaskServiceImpl) ToggleTask(ctx context.Context, taskID int) *models.Task {
	prev, cached := s.cache.Tasks.Get(taskID)
	task, ok := request(s.cache.Tasks, s.logger, fmt.Sprintf("toggle task %d", taskID), func() (*models.Task, error) {
		t, err := s.api.ToggleTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		return t, s.cache.Tasks.UpsertOne(*t)
	})
	if !ok {
		return nil
	}
	if want := coretask.ToggledStatus(prev.Status); cached && task.Status != want {
		s.logger.Printf("warning: task %d toggled from %q to %q, expected %q", taskID, prev.Status, task.Status, want)
	}
	s.activity.updated(ctx, "task", task.ID, "status: "+string(task.Status))
	return task
}

// DeleteTask deletes a task.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, taskID int) bool {
	_, ok := request(s.cache.Tasks, s.logger, fmt.Sprintf("delete task %d", taskID), func() (struct{}, error) {
		return struct{}{}, s.api.DeleteTask(ctx, taskID)
	})
	if !ok {
		return false
	}
	s.cache.Tasks.Remove(taskID)
	s.activity.deleted(ctx, "task", taskID)
	return true
}

// Task returns a cached task.
func (s *TaskServiceImpl) Task(id int) (models.Task, bool) {
	return s.cache.Tasks.Get(id)
}

// TasksByFeature returns the cached tasks of a feature by start date.
func (s *TaskServiceImpl) TasksByFeature(featureID int) []models.Task {
	return s.cache.Index.TasksByFeature(featureID)
}

// EnrichedTasks returns every cached task joined with its feature and project.
func (s *TaskServiceImpl) EnrichedTasks() []enrich.EnrichedTask {
	return s.cache.Enrich.EnrichedTasks()
}

// MyTasks returns the session user's enriched tasks, earliest start first.
func (s *TaskServiceImpl) MyTasks() []enrich.EnrichedTask {
	uid, ok := s.session.CurrentUserID()
	mine := s.cache.Enrich.MyEnrichedTasks(uid, ok)
	enrich.SortForUser(mine, uid)
	return mine
}

// IsLoading reports whether a task request is in flight.
func (s *TaskServiceImpl) IsLoading() bool {
	return s.cache.Tasks.IsLoading()
}

// Err returns the task error slot.
func (s *TaskServiceImpl) Err() models.FieldErrors {
	return s.cache.Tasks.Err()
}

var _ primary.TaskService = (*TaskServiceImpl)(nil)
