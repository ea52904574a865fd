package services

import (
	"testing"

	"github.com/AranyaAryaman/noJIRA/internal/access"
	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/database"
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"github.com/AranyaAryaman/noJIRA/internal/repository"
	"github.com/AranyaAryaman/noJIRA/internal/storage"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// CommentServiceTestSuite defines the test suite for CommentService
type CommentServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CommentService
	creator *models.Person
	task    *models.Task
}

// SetupTest runs before each test
func (suite *CommentServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = database.MigrateWith(suite.db)
	suite.Require().NoError(err)

	store, err := storage.NewLocalStore(suite.T().TempDir())
	suite.Require().NoError(err)

	engine := access.NewEngine(suite.db)
	suite.service = NewCommentService(repository.NewCommentRepository(suite.db), engine, store)

	suite.creator = suite.createTestPerson("creator@example.com")
	project := &models.Project{Name: "Test Project", CreatedBy: suite.creator.ID}
	suite.db.Create(project)
	suite.task = &models.Task{ProjectID: project.ID, Name: "Test Task", CreatedBy: suite.creator.ID, Status: models.TaskStatusNotStarted, Severity: 3, Priority: 3}
	suite.db.Create(suite.task)
}

// TearDownTest runs after each test
func (suite *CommentServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *CommentServiceTestSuite) createTestPerson(email string) *models.Person {
	person := &models.Person{
		Name:         email,
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(person)
	return person
}

func (suite *CommentServiceTestSuite) TestCreateAndList() {
	first, err := suite.service.CreateComment(suite.task.ID, suite.creator, "first")
	suite.Require().NoError(err)
	suite.False(first.IsSystemComment)
	suite.Nil(first.EditedAt)

	_, err = suite.service.CreateComment(suite.task.ID, suite.creator, "second")
	suite.Require().NoError(err)

	comments, err := suite.service.ListComments(suite.task.ID, suite.creator)
	suite.Require().NoError(err)
	suite.Require().Len(comments, 2)
	suite.Equal("first", comments[0].Text)
	suite.Equal("second", comments[1].Text)
}

func (suite *CommentServiceTestSuite) TestUpdateStampsEditedAt() {
	comment, err := suite.service.CreateComment(suite.task.ID, suite.creator, "draft")
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateComment(comment.ID, suite.creator, "final")
	suite.Require().NoError(err)
	suite.Equal("final", updated.Text)
	suite.NotNil(updated.EditedAt)
}

func (suite *CommentServiceTestSuite) TestOnlyAuthorMayMutate() {
	other := suite.createTestPerson("other@example.com")
	suite.db.Create(&models.ProjectMember{ProjectID: suite.task.ProjectID, PersonID: other.ID, Role: models.ProjectRoleMember})

	comment, err := suite.service.CreateComment(suite.task.ID, suite.creator, "mine")
	suite.Require().NoError(err)

	// the other member can read but not mutate
	_, err = suite.service.ListComments(suite.task.ID, other)
	suite.NoError(err)

	_, err = suite.service.UpdateComment(comment.ID, other, "hijacked")
	suite.True(apperrors.IsAccessDenied(err))

	err = suite.service.DeleteComment(comment.ID, other)
	suite.True(apperrors.IsAccessDenied(err))
}

func (suite *CommentServiceTestSuite) TestSystemCommentsAreLocked() {
	system := &models.Comment{
		TaskID:          suite.task.ID,
		PersonID:        suite.creator.ID,
		Text:            "Status changed from None to NOT_STARTED",
		IsSystemComment: true,
	}
	suite.db.Create(system)

	_, err := suite.service.UpdateComment(system.ID, suite.creator, "rewritten")
	suite.True(apperrors.IsValidation(err))

	err = suite.service.DeleteComment(system.ID, suite.creator)
	suite.True(apperrors.IsValidation(err))
}

func (suite *CommentServiceTestSuite) TestDeleteRemovesAttachments() {
	comment, err := suite.service.CreateComment(suite.task.ID, suite.creator, "with file")
	suite.Require().NoError(err)

	suite.db.Create(&models.CommentAttachment{
		CommentID: comment.ID,
		FileName:  "notes.txt",
		FileType:  "text/plain",
		FilePath:  "comments/1/notes.txt",
	})

	err = suite.service.DeleteComment(comment.ID, suite.creator)
	suite.Require().NoError(err)

	var count int64
	suite.db.Model(&models.Comment{}).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.CommentAttachment{}).Count(&count)
	suite.Equal(int64(0), count)
}

func TestCommentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommentServiceTestSuite))
}
