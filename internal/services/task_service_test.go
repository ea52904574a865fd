package services

import (
	"testing"

	"github.com/AranyaAryaman/noJIRA/internal/access"
	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/database"
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"github.com/AranyaAryaman/noJIRA/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService
	creator *models.Person
	project *models.Project
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = database.MigrateWith(suite.db)
	suite.Require().NoError(err)

	engine := access.NewEngine(suite.db)
	suite.service = NewTaskService(
		repository.NewTaskRepository(suite.db),
		repository.NewPersonRepository(suite.db),
		engine,
	)

	suite.creator = suite.createTestPerson("creator@example.com")
	suite.project = &models.Project{Name: "Test Project", CreatedBy: suite.creator.ID}
	suite.db.Create(suite.project)
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) createTestPerson(email string) *models.Person {
	person := &models.Person{
		Name:         email,
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(person)
	return person
}

func (suite *TaskServiceTestSuite) createTask(name string) *models.Task {
	task, err := suite.service.CreateTask(suite.creator, CreateTaskInput{
		ProjectID: suite.project.ID,
		Name:      name,
	})
	suite.Require().NoError(err)
	return task
}

func (suite *TaskServiceTestSuite) TestCreateTaskRecordsInitialHistory() {
	task := suite.createTask("First Task")

	suite.Equal(models.TaskStatusNotStarted, task.Status)
	suite.Equal(3, task.Severity)
	suite.Equal(3, task.Priority)

	var history []models.TaskStatusHistory
	suite.db.Where("task_id = ?", task.ID).Find(&history)
	suite.Require().Len(history, 1)
	suite.Nil(history[0].OldStatus)
	suite.Equal(models.TaskStatusNotStarted, history[0].NewStatus)
	suite.Equal(suite.creator.ID, history[0].ChangedBy)

	// a plain create produces no system comments
	var comments []models.Comment
	suite.db.Where("task_id = ?", task.ID).Find(&comments)
	suite.Empty(comments)
}

func (suite *TaskServiceTestSuite) TestCreateTaskValidatesSeverity() {
	for _, severity := range []int{-1, 6, 100} {
		_, err := suite.service.CreateTask(suite.creator, CreateTaskInput{
			ProjectID: suite.project.ID,
			Name:      "Bad Task",
			Severity:  severity,
		})
		suite.True(apperrors.IsValidation(err))
	}
}

func (suite *TaskServiceTestSuite) TestCreateTaskValidatesPriority() {
	for _, priority := range []int{-1, 6, 100} {
		_, err := suite.service.CreateTask(suite.creator, CreateTaskInput{
			ProjectID: suite.project.ID,
			Name:      "Bad Task",
			Priority:  priority,
		})
		suite.True(apperrors.IsValidation(err))
	}
}

func (suite *TaskServiceTestSuite) TestCreateTaskRejectsUnknownAssignee() {
	_, err := suite.service.CreateTask(suite.creator, CreateTaskInput{
		ProjectID:  suite.project.ID,
		Name:       "Task",
		AssigneeID: ptrUint64(9999),
	})
	suite.True(apperrors.IsValidation(err))
}

func (suite *TaskServiceTestSuite) TestCreateTaskDeduplicatesTags() {
	task, err := suite.service.CreateTask(suite.creator, CreateTaskInput{
		ProjectID: suite.project.ID,
		Name:      "Tagged Task",
		Tags:      []string{"bug", "urgent", "bug"},
	})
	suite.Require().NoError(err)

	var tags []models.TaskTag
	suite.db.Where("task_id = ?", task.ID).Find(&tags)
	suite.Len(tags, 2)
}

func (suite *TaskServiceTestSuite) TestStatusChangeWritesHistoryAndSystemComment() {
	task := suite.createTask("Task")

	status := models.TaskStatusPlanning
	_, err := suite.service.UpdateTask(task.ID, suite.creator, UpdateTaskInput{Status: &status})
	suite.Require().NoError(err)

	var history []models.TaskStatusHistory
	suite.db.Where("task_id = ?", task.ID).Order("id ASC").Find(&history)
	suite.Require().Len(history, 2)
	suite.Require().NotNil(history[1].OldStatus)
	suite.Equal(models.TaskStatusNotStarted, *history[1].OldStatus)
	suite.Equal(models.TaskStatusPlanning, history[1].NewStatus)

	var comments []models.Comment
	suite.db.Where("task_id = ?", task.ID).Find(&comments)
	suite.Require().Len(comments, 1)
	suite.True(comments[0].IsSystemComment)
	suite.Equal(suite.creator.ID, comments[0].PersonID)
	suite.Equal("Status changed from NOT_STARTED to PLANNING", comments[0].Text)
}

func (suite *TaskServiceTestSuite) TestSameStatusWritesNothing() {
	task := suite.createTask("Task")

	status := models.TaskStatusNotStarted
	_, err := suite.service.UpdateTask(task.ID, suite.creator, UpdateTaskInput{Status: &status})
	suite.Require().NoError(err)

	var count int64
	suite.db.Model(&models.TaskStatusHistory{}).Where("task_id = ?", task.ID).Count(&count)
	suite.Equal(int64(1), count)

	suite.db.Model(&models.Comment{}).Where("task_id = ?", task.ID).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *TaskServiceTestSuite) TestAssigneeChangeWritesSystemComment() {
	assignee := suite.createTestPerson("alice@example.com")
	task := suite.createTask("Task")

	_, err := suite.service.UpdateTask(task.ID, suite.creator, UpdateTaskInput{AssigneeID: &assignee.ID})
	suite.Require().NoError(err)

	var comments []models.Comment
	suite.db.Where("task_id = ?", task.ID).Order("id ASC").Find(&comments)
	suite.Require().Len(comments, 1)
	suite.Equal("Assignee changed from Unassigned to alice@example.com", comments[0].Text)

	// no history rows for assignee changes
	var count int64
	suite.db.Model(&models.TaskStatusHistory{}).Where("task_id = ?", task.ID).Count(&count)
	suite.Equal(int64(1), count)

	// unassign via zero
	zero := uint64(0)
	_, err = suite.service.UpdateTask(task.ID, suite.creator, UpdateTaskInput{AssigneeID: &zero})
	suite.Require().NoError(err)

	suite.db.Where("task_id = ?", task.ID).Order("id ASC").Find(&comments)
	suite.Require().Len(comments, 2)
	suite.Equal("Assignee changed from alice@example.com to Unassigned", comments[1].Text)
}

func (suite *TaskServiceTestSuite) TestReparentRejectsCycles() {
	parent := suite.createTask("Parent")
	child, err := suite.service.CreateTask(suite.creator, CreateTaskInput{
		ProjectID:    suite.project.ID,
		Name:         "Child",
		ParentTaskID: &parent.ID,
	})
	suite.Require().NoError(err)

	// self-parent
	_, err = suite.service.UpdateTask(parent.ID, suite.creator, UpdateTaskInput{
		Reparent:   true,
		ReparentTo: &parent.ID,
	})
	suite.True(apperrors.IsValidation(err))

	// moving under a descendant
	_, err = suite.service.UpdateTask(parent.ID, suite.creator, UpdateTaskInput{
		Reparent:   true,
		ReparentTo: &child.ID,
	})
	suite.True(apperrors.IsValidation(err))
}

func (suite *TaskServiceTestSuite) TestReparentRequiresSameProject() {
	other := &models.Project{Name: "Other Project", CreatedBy: suite.creator.ID}
	suite.db.Create(other)
	foreign, err := suite.service.CreateTask(suite.creator, CreateTaskInput{
		ProjectID: other.ID,
		Name:      "Foreign",
	})
	suite.Require().NoError(err)

	task := suite.createTask("Task")
	_, err = suite.service.UpdateTask(task.ID, suite.creator, UpdateTaskInput{
		Reparent:   true,
		ReparentTo: &foreign.ID,
	})
	suite.True(apperrors.IsValidation(err))
}

func (suite *TaskServiceTestSuite) TestDeleteOrphansChildrenAndRemovesOwned() {
	parent := suite.createTask("Parent")
	child, err := suite.service.CreateTask(suite.creator, CreateTaskInput{
		ProjectID:    suite.project.ID,
		Name:         "Child",
		ParentTaskID: &parent.ID,
	})
	suite.Require().NoError(err)

	suite.db.Create(&models.Comment{TaskID: parent.ID, PersonID: suite.creator.ID, Text: "note"})
	suite.db.Create(&models.TaskTag{TaskID: parent.ID, Tag: "bug"})
	suite.db.Create(&models.TaskWatcher{TaskID: parent.ID, PersonID: suite.creator.ID})

	err = suite.service.DeleteTask(parent.ID, suite.creator)
	suite.Require().NoError(err)

	// child survives as a root task
	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, child.ID).Error)
	suite.Nil(reloaded.ParentTaskID)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", parent.ID).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.Comment{}).Where("task_id = ?", parent.ID).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.TaskTag{}).Where("task_id = ?", parent.ID).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.TaskWatcher{}).Where("task_id = ?", parent.ID).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.TaskStatusHistory{}).Where("task_id = ?", parent.ID).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *TaskServiceTestSuite) TestListOrdersByPriorityThenRecency() {
	low, err := suite.service.CreateTask(suite.creator, CreateTaskInput{
		ProjectID: suite.project.ID, Name: "Low", Priority: 1,
	})
	suite.Require().NoError(err)
	high, err := suite.service.CreateTask(suite.creator, CreateTaskInput{
		ProjectID: suite.project.ID, Name: "High", Priority: 5,
	})
	suite.Require().NoError(err)

	tasks, total, err := suite.service.ListTasks(suite.creator, ListTasksInput{ProjectID: suite.project.ID})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Require().Len(tasks, 2)
	suite.Equal(high.ID, tasks[0].ID)
	suite.Equal(low.ID, tasks[1].ID)
}

func (suite *TaskServiceTestSuite) TestListFiltersRootTasks() {
	parent := suite.createTask("Parent")
	_, err := suite.service.CreateTask(suite.creator, CreateTaskInput{
		ProjectID:    suite.project.ID,
		Name:         "Child",
		ParentTaskID: &parent.ID,
	})
	suite.Require().NoError(err)

	tasks, _, err := suite.service.ListTasks(suite.creator, ListTasksInput{
		ProjectID: suite.project.ID,
		ParentSet: true,
	})
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 1)
	suite.Equal(parent.ID, tasks[0].ID)
}

func (suite *TaskServiceTestSuite) TestWatcherLifecycle() {
	watcher := suite.createTestPerson("watcher@example.com")
	task := suite.createTask("Task")

	suite.Require().NoError(suite.service.AddWatcher(task.ID, suite.creator, watcher.ID))

	err := suite.service.AddWatcher(task.ID, suite.creator, watcher.ID)
	suite.True(apperrors.IsConflict(err))

	watchers, err := suite.service.ListWatchers(task.ID, suite.creator)
	suite.Require().NoError(err)
	suite.Len(watchers, 1)

	suite.Require().NoError(suite.service.RemoveWatcher(task.ID, suite.creator, watcher.ID))

	err = suite.service.RemoveWatcher(task.ID, suite.creator, watcher.ID)
	suite.True(apperrors.IsNotFound(err))
}

func (suite *TaskServiceTestSuite) TestAccessIsEnforced() {
	stranger := suite.createTestPerson("stranger@example.com")
	task := suite.createTask("Task")

	_, err := suite.service.CreateTask(stranger, CreateTaskInput{ProjectID: suite.project.ID, Name: "Nope"})
	suite.True(apperrors.IsAccessDenied(err))

	_, _, err = suite.service.GetTask(task.ID, stranger)
	suite.True(apperrors.IsAccessDenied(err))

	err = suite.service.DeleteTask(task.ID, stranger)
	suite.True(apperrors.IsAccessDenied(err))
}

func ptrUint64(v uint64) *uint64 { return &v }

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
