package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AranyaAryaman/noJIRA/internal/access"
	"github.com/AranyaAryaman/noJIRA/internal/constants"
	"github.com/AranyaAryaman/noJIRA/internal/database"
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"github.com/AranyaAryaman/noJIRA/internal/repository"
	"github.com/AranyaAryaman/noJIRA/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	router  *gin.Engine
	actor   *models.Person
	project *models.Project
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = database.MigrateWith(suite.db)
	suite.Require().NoError(err)
	database.SetDB(suite.db)

	engine := access.NewEngine(suite.db)
	taskService := services.NewTaskService(
		repository.NewTaskRepository(suite.db),
		repository.NewPersonRepository(suite.db),
		engine,
	)
	handler := NewTaskHandler(taskService)

	suite.actor = &models.Person{Name: "Alice", Email: "alice@example.com", PasswordHash: "hashedpassword"}
	suite.db.Create(suite.actor)
	suite.project = &models.Project{Name: "Test Project", CreatedBy: suite.actor.ID}
	suite.db.Create(suite.project)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyPersonID, suite.actor.ID)
		c.Set(constants.ContextKeyActor, suite.actor)
	})
	suite.router.POST("/projects/:project_id/tasks", handler.CreateTask)
	suite.router.GET("/projects/:project_id/tasks", handler.ListTasks)
	suite.router.GET("/tasks/:task_id", handler.GetTask)
	suite.router.PATCH("/tasks/:task_id", handler.UpdateTask)
	suite.router.DELETE("/tasks/:task_id", handler.DeleteTask)
	suite.router.POST("/tasks/:task_id/watchers", handler.AddWatcher)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) request(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) TestCreateTask() {
	w := suite.request(http.MethodPost, fmt.Sprintf("/projects/%d/tasks", suite.project.ID), gin.H{
		"name": "New Task",
		"tags": []string{"bug"},
	})
	suite.Equal(http.StatusCreated, w.Code)

	var resp struct {
		TaskID uint64            `json:"task_id"`
		Name   string            `json:"name"`
		Status models.TaskStatus `json:"status"`
		Tags   []string          `json:"tags"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotZero(resp.TaskID)
	suite.Equal("New Task", resp.Name)
	suite.Equal(models.TaskStatusNotStarted, resp.Status)
	suite.Equal([]string{"bug"}, resp.Tags)
}

func (suite *TaskHandlerTestSuite) TestCreateTaskRequiresName() {
	w := suite.request(http.MethodPost, fmt.Sprintf("/projects/%d/tasks", suite.project.ID), gin.H{
		"description": "no name",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasksPaginates() {
	for i := 0; i < 3; i++ {
		w := suite.request(http.MethodPost, fmt.Sprintf("/projects/%d/tasks", suite.project.ID), gin.H{
			"name": fmt.Sprintf("Task %d", i),
		})
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	w := suite.request(http.MethodGet, fmt.Sprintf("/projects/%d/tasks?page=1&page_size=2", suite.project.ID), nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Tasks    []json.RawMessage `json:"tasks"`
		Total    int64             `json:"total"`
		PageSize int               `json:"page_size"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Tasks, 2)
	suite.Equal(int64(3), resp.Total)
	suite.Equal(2, resp.PageSize)

	w = suite.request(http.MethodGet, fmt.Sprintf("/projects/%d/tasks?page=2&page_size=2", suite.project.ID), nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Tasks, 1)
	suite.Equal(int64(3), resp.Total)
}

func (suite *TaskHandlerTestSuite) TestListTasksWithoutPagingReturnsAll() {
	for i := 0; i < 3; i++ {
		w := suite.request(http.MethodPost, fmt.Sprintf("/projects/%d/tasks", suite.project.ID), gin.H{
			"name": fmt.Sprintf("Task %d", i),
		})
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	w := suite.request(http.MethodGet, fmt.Sprintf("/projects/%d/tasks", suite.project.ID), nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Tasks    []json.RawMessage `json:"tasks"`
		Total    int64             `json:"total"`
		PageSize int               `json:"page_size"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Tasks, 3)
	suite.Equal(int64(3), resp.Total)
	suite.Equal(0, resp.PageSize)
}

func (suite *TaskHandlerTestSuite) TestAddWatcherDefaultsToCaller() {
	w := suite.request(http.MethodPost, fmt.Sprintf("/projects/%d/tasks", suite.project.ID), gin.H{"name": "Task"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var created struct {
		TaskID uint64 `json:"task_id"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	w = suite.request(http.MethodPost, fmt.Sprintf("/tasks/%d/watchers", created.TaskID), gin.H{})
	suite.Equal(http.StatusCreated, w.Code)

	var watcher models.TaskWatcher
	err := suite.db.Where("task_id = ? AND person_id = ?", created.TaskID, suite.actor.ID).First(&watcher).Error
	suite.NoError(err)
}

func (suite *TaskHandlerTestSuite) TestUpdateStatusViaPatch() {
	w := suite.request(http.MethodPost, fmt.Sprintf("/projects/%d/tasks", suite.project.ID), gin.H{"name": "Task"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var created struct {
		TaskID uint64 `json:"task_id"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	w = suite.request(http.MethodPatch, fmt.Sprintf("/tasks/%d", created.TaskID), gin.H{"status": "PLANNING"})
	suite.Equal(http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Comment{}).Where("task_id = ? AND is_system_comment = ?", created.TaskID, true).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *TaskHandlerTestSuite) TestExplicitNullParentMovesToRoot() {
	w := suite.request(http.MethodPost, fmt.Sprintf("/projects/%d/tasks", suite.project.ID), gin.H{"name": "Parent"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var parent struct {
		TaskID uint64 `json:"task_id"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &parent))

	w = suite.request(http.MethodPost, fmt.Sprintf("/projects/%d/tasks", suite.project.ID), gin.H{
		"name":           "Child",
		"parent_task_id": parent.TaskID,
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var child struct {
		TaskID uint64 `json:"task_id"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &child))

	w = suite.request(http.MethodPatch, fmt.Sprintf("/tasks/%d", child.TaskID), map[string]any{"parent_task_id": nil})
	suite.Equal(http.StatusOK, w.Code)

	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, child.TaskID).Error)
	suite.Nil(reloaded.ParentTaskID)
}

func (suite *TaskHandlerTestSuite) TestGetUnknownTaskReturns404() {
	w := suite.request(http.MethodGet, "/tasks/9999", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestInvalidTaskIDReturns400() {
	w := suite.request(http.MethodGet, "/tasks/abc", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
