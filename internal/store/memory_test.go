package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TASKTRACKER_BACK-END/internal/models"
)

func newTask(ownerID uuid.UUID, title string, createdAt time.Time) *models.Task {
	return &models.Task{
		ID:        uuid.New(),
		Title:     title,
		Status:    models.StatusPending,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestMemoryUserRepository_DuplicateEmailCaseInsensitive(t *testing.T) {
	t.Parallel()

	repo := NewMemoryUserRepository()
	ctx := context.Background()

	first := &models.User{ID: uuid.New(), Name: "Ann", Email: "ann@x.com"}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.User{ID: uuid.New(), Name: "Other Ann", Email: "Ann@X.com"}
	assert.ErrorIs(t, repo.Create(ctx, second), ErrDuplicateEmail)
}

func TestMemoryUserRepository_Lookups(t *testing.T) {
	t.Parallel()

	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := &models.User{ID: uuid.New(), Name: "Ann", Email: "ann@x.com"}
	require.NoError(t, repo.Create(ctx, user))

	byEmail, err := repo.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", byID.Email)

	_, err = repo.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryTaskRepository_ListNewestFirst(t *testing.T) {
	t.Parallel()

	repo := NewMemoryTaskRepository()
	ctx := context.Background()
	owner := uuid.New()

	base := time.Now()
	oldest := newTask(owner, "oldest", base.Add(-2*time.Hour))
	middle := newTask(owner, "middle", base.Add(-time.Hour))
	newest := newTask(owner, "newest", base)
	for _, task := range []*models.Task{middle, oldest, newest} {
		require.NoError(t, repo.Create(ctx, task))
	}

	tasks, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "newest", tasks[0].Title)
	assert.Equal(t, "middle", tasks[1].Title)
	assert.Equal(t, "oldest", tasks[2].Title)
}

// A task owned by someone else must be indistinguishable from a task that
// does not exist.
func TestMemoryTaskRepository_OwnershipScoping(t *testing.T) {
	t.Parallel()

	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	owner := uuid.New()
	intruder := uuid.New()
	task := newTask(owner, "private", time.Now())
	require.NoError(t, repo.Create(ctx, task))

	_, err := repo.GetByID(ctx, intruder, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	title := "stolen"
	_, err = repo.Update(ctx, intruder, task.ID, TaskPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, intruder, task.ID), ErrNotFound)

	// owner still sees the task untouched
	got, err := repo.GetByID(ctx, owner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Title)

	missingID := uuid.New()
	_, err = repo.GetByID(ctx, intruder, missingID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryTaskRepository_UpdatePatchSemantics(t *testing.T) {
	t.Parallel()

	repo := NewMemoryTaskRepository()
	ctx := context.Background()
	owner := uuid.New()

	task := newTask(owner, "write report", time.Now())
	task.Description = "quarterly numbers"
	require.NoError(t, repo.Create(ctx, task))

	// empty patch leaves all fields unchanged
	got, err := repo.Update(ctx, owner, task.ID, TaskPatch{})
	require.NoError(t, err)
	assert.Equal(t, "write report", got.Title)
	assert.Equal(t, "quarterly numbers", got.Description)
	assert.Equal(t, models.StatusPending, got.Status)

	status := models.StatusCompleted
	got, err = repo.Update(ctx, owner, task.ID, TaskPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, "write report", got.Title)
}

func TestMemoryTaskRepository_DeleteThenGet(t *testing.T) {
	t.Parallel()

	repo := NewMemoryTaskRepository()
	ctx := context.Background()
	owner := uuid.New()

	task := newTask(owner, "ephemeral", time.Now())
	require.NoError(t, repo.Create(ctx, task))

	require.NoError(t, repo.Delete(ctx, owner, task.ID))

	_, err := repo.GetByID(ctx, owner, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// repeat delete reports not found, not success
	assert.ErrorIs(t, repo.Delete(ctx, owner, task.ID), ErrNotFound)
}
