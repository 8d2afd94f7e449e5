package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/sprintdesk/internal/adapters/sqlite"
	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

func sampleSnapshot() *secondary.Snapshot {
	due := models.NewDate(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	return &secondary.Snapshot{
		Projects: []models.Project{
			{ID: 1, Name: "Apollo", OwnerID: 7, DueDate: due, Members: []int{7, 8}},
		},
		Sprints: []models.Sprint{
			{ID: 5, ProjectID: 1, Name: "Sprint 1"},
		},
		Features: []models.Feature{
			{ID: 10, ProjectID: 1, Name: "Parked"},
			{ID: 11, ProjectID: 1, SprintID: intPtr(5), Name: "Planned", Priority: models.PriorityHigh},
		},
		Tasks: []models.Task{
			{ID: 100, FeatureID: 10, Name: "Login form", Status: models.TaskStatusInProgress, AssignedTo: intPtr(7), DueDate: due},
		},
		Users:       []models.User{{ID: 7, Username: "ada"}, {ID: 8, Username: "grace"}},
		SessionUser: &models.User{ID: 7, Username: "ada"},
		BaseURL:     "http://localhost:5000",
		SavedAt:     time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestSnapshotRepository_LoadWithoutSave(t *testing.T) {
	repo := sqlite.NewSnapshotRepository(setupTestDB(t))

	_, err := repo.LoadSnapshot(context.Background())
	assert.ErrorIs(t, err, secondary.ErrNoSnapshot)
}

func TestSnapshotRepository_RoundTrip(t *testing.T) {
	repo := sqlite.NewSnapshotRepository(setupTestDB(t))
	ctx := context.Background()
	want := sampleSnapshot()

	require.NoError(t, repo.SaveSnapshot(ctx, want))

	got, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.BaseURL, got.BaseURL)
	assert.True(t, want.SavedAt.Equal(got.SavedAt), "SavedAt = %v", got.SavedAt)
	require.NotNil(t, got.SessionUser)
	assert.Equal(t, 7, got.SessionUser.ID)

	require.Len(t, got.Projects, 1)
	assert.Equal(t, []int{7, 8}, got.Projects[0].Members)
	assert.True(t, want.Projects[0].DueDate.Equal(got.Projects[0].DueDate.Time))

	require.Len(t, got.Features, 2)
	assert.True(t, got.Features[0].InParkingLot())
	assert.True(t, got.Features[1].InSprint(5))
	assert.Equal(t, models.PriorityHigh, got.Features[1].Priority)

	require.Len(t, got.Tasks, 1)
	assert.Equal(t, models.TaskStatusInProgress, got.Tasks[0].Status)
	assert.True(t, got.Tasks[0].IsAssignedTo(7))

	assert.Len(t, got.Sprints, 1)
	assert.Len(t, got.Users, 2)
}

func TestSnapshotRepository_SaveReplacesPrevious(t *testing.T) {
	repo := sqlite.NewSnapshotRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveSnapshot(ctx, sampleSnapshot()))
	require.NoError(t, repo.SaveSnapshot(ctx, &secondary.Snapshot{
		Projects: []models.Project{{ID: 2, Name: "Gemini"}},
		BaseURL:  "http://other:5000",
	}))

	got, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)

	require.Len(t, got.Projects, 1)
	assert.Equal(t, "Gemini", got.Projects[0].Name)
	assert.Empty(t, got.Tasks)
	assert.NotNil(t, got.Tasks)
	assert.Nil(t, got.SessionUser)
	assert.Equal(t, "http://other:5000", got.BaseURL)
	assert.False(t, got.SavedAt.IsZero())
}

func TestSnapshotRepository_DuplicateIDRollsBack(t *testing.T) {
	repo := sqlite.NewSnapshotRepository(setupTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.SaveSnapshot(ctx, sampleSnapshot()))

	bad := sampleSnapshot()
	bad.Tasks = append(bad.Tasks, bad.Tasks[0])
	assert.Error(t, repo.SaveSnapshot(ctx, bad))

	got, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Tasks, 1, "failed save must leave the previous snapshot intact")
}
