package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/todo-cli/internal/database"
	"github.com/yukikurage/todo-cli/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TaskRepositoryTestSuite defines the test suite for GormTaskRepository
type TaskRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	clock time.Time
	repo  TaskRepository
	owner *models.User
	other *models.User
}

// SetupTest runs before each test
func (suite *TaskRepositoryTestSuite) SetupTest() {
	var err error

	suite.db, err = database.OpenSQLite(":memory:", nil)
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(suite.db))

	suite.clock = time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)
	suite.repo = NewTaskRepositoryWithClock(suite.db, func() time.Time { return suite.clock })

	suite.owner = suite.createTestUser("owner")
	suite.other = suite.createTestUser("other")
}

// TearDownTest runs after each test
func (suite *TaskRepositoryTestSuite) TearDownTest() {
	suite.Require().NoError(database.Close(suite.db))
}

func (suite *TaskRepositoryTestSuite) createTestUser(username string) *models.User {
	user := &models.User{Username: username, PasswordHash: "hashedpassword"}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskRepositoryTestSuite) createTestTask(userID uint64, title string, priority models.Priority, due *string) *models.Task {
	task, err := suite.repo.Create(CreateTaskInput{
		UserID:   userID,
		Title:    title,
		Priority: priority,
		DueDate:  due,
	})
	suite.Require().NoError(err)
	suite.clock = suite.clock.Add(time.Minute)
	return task
}

func ptr[T any](v T) *T { return &v }

func ids(tasks []models.Task) []uint64 {
	out := make([]uint64, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}

func (suite *TaskRepositoryTestSuite) TestCreate() {
	task := suite.createTestTask(suite.owner.ID, "Write tests", models.PriorityHigh, ptr("2024-06-20"))

	suite.NotZero(task.ID)
	suite.Equal(models.TaskStatusPending, task.Status)

	found, err := suite.repo.FindByID(task.ID)
	suite.Require().NoError(err)
	suite.Equal("Write tests", found.Title)
	suite.Equal(suite.owner.ID, found.UserID)
	suite.Equal(models.PriorityHigh, found.Priority)
	suite.Equal("2024-06-20", *found.DueDate)
	suite.Nil(found.Description)
}

func (suite *TaskRepositoryTestSuite) TestCreate_InvalidPriority() {
	_, err := suite.repo.Create(CreateTaskInput{UserID: suite.owner.ID, Title: "x", Priority: "urgent"})
	suite.ErrorIs(err, ErrInvalidPriority)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Zero(count)
}

func (suite *TaskRepositoryTestSuite) TestCreate_EmptyDueDateStoredAsNull() {
	task := suite.createTestTask(suite.owner.ID, "Undated", models.PriorityLow, ptr(""))

	found, err := suite.repo.FindByID(task.ID)
	suite.Require().NoError(err)
	suite.Nil(found.DueDate)
}

func (suite *TaskRepositoryTestSuite) TestFindByID_NotFound() {
	_, err := suite.repo.FindByID(42)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *TaskRepositoryTestSuite) TestListByUser_OnlyOwnTasks() {
	first := suite.createTestTask(suite.owner.ID, "Mine 1", models.PriorityLow, nil)
	suite.createTestTask(suite.other.ID, "Theirs", models.PriorityLow, nil)
	second := suite.createTestTask(suite.owner.ID, "Mine 2", models.PriorityLow, nil)

	tasks, err := suite.repo.ListByUser(TaskFilter{UserID: suite.owner.ID, SortBy: SortByCreatedAt, Order: OrderAsc})
	suite.Require().NoError(err)
	suite.Equal([]uint64{first.ID, second.ID}, ids(tasks))

	tasks, err = suite.repo.ListByUser(TaskFilter{UserID: suite.owner.ID, SortBy: SortByCreatedAt, Order: OrderDesc})
	suite.Require().NoError(err)
	suite.Equal([]uint64{second.ID, first.ID}, ids(tasks))
}

func (suite *TaskRepositoryTestSuite) TestListByUser_Filters() {
	low := suite.createTestTask(suite.owner.ID, "Low", models.PriorityLow, nil)
	high := suite.createTestTask(suite.owner.ID, "High", models.PriorityHigh, nil)
	done := suite.createTestTask(suite.owner.ID, "Done", models.PriorityHigh, nil)
	_, err := suite.repo.Update(done.ID, TaskPatch{Status: ptr(models.TaskStatusCompleted)})
	suite.Require().NoError(err)

	tasks, err := suite.repo.ListByUser(TaskFilter{UserID: suite.owner.ID, Status: ptr(models.TaskStatusPending)})
	suite.Require().NoError(err)
	suite.ElementsMatch([]uint64{low.ID, high.ID}, ids(tasks))

	tasks, err = suite.repo.ListByUser(TaskFilter{UserID: suite.owner.ID, Priority: ptr(models.PriorityHigh)})
	suite.Require().NoError(err)
	suite.ElementsMatch([]uint64{high.ID, done.ID}, ids(tasks))
}

func (suite *TaskRepositoryTestSuite) TestUpdate() {
	task := suite.createTestTask(suite.owner.ID, "Old", models.PriorityLow, ptr("2024-06-20"))
	suite.clock = suite.clock.Add(time.Hour)

	updated, err := suite.repo.Update(task.ID, TaskPatch{
		Title:       ptr("New"),
		Description: ptr("details"),
	})
	suite.Require().NoError(err)

	suite.Equal("New", updated.Title)
	suite.Equal("details", *updated.Description)
	suite.Equal(models.PriorityLow, updated.Priority)
	suite.Equal("2024-06-20", *updated.DueDate)
	suite.True(updated.UpdatedAt.After(updated.CreatedAt))
}

func (suite *TaskRepositoryTestSuite) TestUpdate_ClearsDueDate() {
	task := suite.createTestTask(suite.owner.ID, "Dated", models.PriorityLow, ptr("2024-06-20"))

	updated, err := suite.repo.Update(task.ID, TaskPatch{DueDate: ptr("")})
	suite.Require().NoError(err)
	suite.Nil(updated.DueDate)
}

func (suite *TaskRepositoryTestSuite) TestUpdate_Rejected() {
	task := suite.createTestTask(suite.owner.ID, "Keep", models.PriorityLow, nil)

	_, err := suite.repo.Update(task.ID, TaskPatch{})
	suite.ErrorIs(err, ErrEmptyPatch)

	_, err = suite.repo.Update(task.ID, TaskPatch{Priority: ptr(models.Priority("urgent"))})
	suite.ErrorIs(err, ErrInvalidPriority)

	_, err = suite.repo.Update(task.ID, TaskPatch{Status: ptr(models.TaskStatus("archived"))})
	suite.ErrorIs(err, ErrInvalidStatus)

	_, err = suite.repo.Update(task.ID, TaskPatch{DueDate: ptr("tomorrow")})
	suite.ErrorIs(err, ErrInvalidDueDate)

	_, err = suite.repo.Update(999, TaskPatch{Title: ptr("ghost")})
	suite.ErrorIs(err, ErrNotFound)

	found, err := suite.repo.FindByID(task.ID)
	suite.Require().NoError(err)
	suite.Equal("Keep", found.Title)
	suite.Equal(models.PriorityLow, found.Priority)
	suite.Equal(models.TaskStatusPending, found.Status)
	suite.Nil(found.DueDate)
}

func (suite *TaskRepositoryTestSuite) TestDelete() {
	task := suite.createTestTask(suite.owner.ID, "Gone", models.PriorityLow, nil)

	deleted, err := suite.repo.Delete(task.ID)
	suite.Require().NoError(err)
	suite.True(deleted)

	deleted, err = suite.repo.Delete(task.ID)
	suite.Require().NoError(err)
	suite.False(deleted)

	_, err = suite.repo.FindByID(task.ID)
	suite.ErrorIs(err, ErrNotFound)
}

func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}

func newMockRepository(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := database.Open(postgres.New(postgres.Config{Conn: sqlDB}), nil)
	require.NoError(t, err)

	return NewTaskRepository(db), mock
}

func TestGormTaskRepository_StoreFailures(t *testing.T) {
	storeErr := errors.New("connection reset by peer")

	t.Run("find", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`SELECT \* FROM "tasks"`).WillReturnError(storeErr)

		_, err := repo.FindByID(1)
		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE tasks.user_id = \$1`).WillReturnError(storeErr)

		_, err := repo.ListByUser(TaskFilter{UserID: 7})
		assert.ErrorIs(t, err, storeErr)
		assert.ErrorContains(t, err, "failed to list tasks")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "tasks"`).WillReturnError(storeErr)
		mock.ExpectRollback()

		deleted, err := repo.Delete(3)
		assert.False(t, deleted)
		assert.ErrorIs(t, err, storeErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
