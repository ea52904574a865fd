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

// ProjectServiceTestSuite defines the test suite for ProjectService
type ProjectServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProjectService
	creator *models.Person
}

// SetupTest runs before each test
func (suite *ProjectServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = database.MigrateWith(suite.db)
	suite.Require().NoError(err)

	engine := access.NewEngine(suite.db)
	suite.service = NewProjectService(
		repository.NewProjectRepository(suite.db),
		repository.NewPersonRepository(suite.db),
		engine,
	)

	suite.creator = suite.createTestPerson("creator@example.com")
}

// TearDownTest runs after each test
func (suite *ProjectServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ProjectServiceTestSuite) createTestPerson(email string) *models.Person {
	person := &models.Person{
		Name:         email,
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(person)
	return person
}

func (suite *ProjectServiceTestSuite) createProject() *models.Project {
	project, err := suite.service.CreateProject(suite.creator, CreateProjectInput{Name: "Test Project"})
	suite.Require().NoError(err)
	return project
}

func (suite *ProjectServiceTestSuite) TestCreateEnrollsCreatorAsAdmin() {
	project := suite.createProject()

	var member models.ProjectMember
	err := suite.db.Where("project_id = ? AND person_id = ?", project.ID, suite.creator.ID).First(&member).Error
	suite.Require().NoError(err)
	suite.Equal(models.ProjectRoleAdmin, member.Role)
}

func (suite *ProjectServiceTestSuite) TestMemberLifecycle() {
	project := suite.createProject()
	person := suite.createTestPerson("member@example.com")

	member, err := suite.service.AddMember(project.ID, suite.creator, person.ID, models.ProjectRoleViewer)
	suite.Require().NoError(err)
	suite.Equal(models.ProjectRoleViewer, member.Role)

	// duplicate enrollment
	_, err = suite.service.AddMember(project.ID, suite.creator, person.ID, models.ProjectRoleViewer)
	suite.True(apperrors.IsConflict(err))

	// unknown person
	_, err = suite.service.AddMember(project.ID, suite.creator, 9999, models.ProjectRoleViewer)
	suite.True(apperrors.IsNotFound(err))

	err = suite.service.UpdateMemberRole(project.ID, suite.creator, person.ID, models.ProjectRoleAdmin)
	suite.Require().NoError(err)

	var reloaded models.ProjectMember
	suite.db.Where("project_id = ? AND person_id = ?", project.ID, person.ID).First(&reloaded)
	suite.Equal(models.ProjectRoleAdmin, reloaded.Role)

	err = suite.service.RemoveMember(project.ID, suite.creator, person.ID)
	suite.Require().NoError(err)

	err = suite.service.RemoveMember(project.ID, suite.creator, person.ID)
	suite.True(apperrors.IsNotFound(err))
}

func (suite *ProjectServiceTestSuite) TestMemberManagementRequiresAdmin() {
	project := suite.createProject()
	viewer := suite.createTestPerson("viewer@example.com")
	target := suite.createTestPerson("target@example.com")

	_, err := suite.service.AddMember(project.ID, suite.creator, viewer.ID, models.ProjectRoleViewer)
	suite.Require().NoError(err)

	_, err = suite.service.AddMember(project.ID, viewer, target.ID, models.ProjectRoleViewer)
	suite.True(apperrors.IsAccessDenied(err))

	err = suite.service.DeleteProject(project.ID, viewer)
	suite.True(apperrors.IsAccessDenied(err))
}

func (suite *ProjectServiceTestSuite) TestTeamLinkLifecycle() {
	project := suite.createProject()
	team := &models.Team{Name: "Test Team", CreatedBy: suite.creator.ID}
	suite.db.Create(team)

	err := suite.service.LinkTeam(project.ID, suite.creator, team.ID)
	suite.Require().NoError(err)

	err = suite.service.LinkTeam(project.ID, suite.creator, team.ID)
	suite.True(apperrors.IsConflict(err))

	err = suite.service.UnlinkTeam(project.ID, suite.creator, team.ID)
	suite.Require().NoError(err)

	err = suite.service.UnlinkTeam(project.ID, suite.creator, team.ID)
	suite.True(apperrors.IsNotFound(err))
}

func (suite *ProjectServiceTestSuite) TestLinkTeamRequiresTeamVisibility() {
	project := suite.createProject()
	other := suite.createTestPerson("other@example.com")
	team := &models.Team{Name: "Foreign Team", CreatedBy: other.ID}
	suite.db.Create(team)

	err := suite.service.LinkTeam(project.ID, suite.creator, team.ID)
	suite.True(apperrors.IsAccessDenied(err))
}

func (suite *ProjectServiceTestSuite) TestListProjectsCoversTeamGrants() {
	project := suite.createProject()

	teammate := suite.createTestPerson("teammate@example.com")
	team := &models.Team{Name: "Test Team", CreatedBy: suite.creator.ID}
	suite.db.Create(team)
	suite.db.Create(&models.TeamMember{TeamID: team.ID, PersonID: teammate.ID, Role: models.TeamRoleMember})

	projects, err := suite.service.ListProjects(teammate, false)
	suite.Require().NoError(err)
	suite.Empty(projects)

	suite.Require().NoError(suite.service.LinkTeam(project.ID, suite.creator, team.ID))

	projects, err = suite.service.ListProjects(teammate, false)
	suite.Require().NoError(err)
	suite.Require().Len(projects, 1)
	suite.Equal(project.ID, projects[0].ID)
}

func (suite *ProjectServiceTestSuite) TestArchivedProjectsHiddenByDefault() {
	project := suite.createProject()
	archived := true
	_, err := suite.service.UpdateProject(project.ID, suite.creator, UpdateProjectInput{IsArchived: &archived})
	suite.Require().NoError(err)

	projects, err := suite.service.ListProjects(suite.creator, false)
	suite.Require().NoError(err)
	suite.Empty(projects)

	projects, err = suite.service.ListProjects(suite.creator, true)
	suite.Require().NoError(err)
	suite.Len(projects, 1)
}

func (suite *ProjectServiceTestSuite) TestDeleteCascadesThroughTasks() {
	project := suite.createProject()

	task := &models.Task{ProjectID: project.ID, Name: "Task", CreatedBy: suite.creator.ID, Status: models.TaskStatusNotStarted, Severity: 3, Priority: 3}
	suite.db.Create(task)
	comment := &models.Comment{TaskID: task.ID, PersonID: suite.creator.ID, Text: "note"}
	suite.db.Create(comment)
	suite.db.Create(&models.CommentAttachment{CommentID: comment.ID, FileName: "a.txt", FileType: "text/plain", FilePath: "comments/1/a.txt"})
	suite.db.Create(&models.TaskStatusHistory{TaskID: task.ID, NewStatus: models.TaskStatusNotStarted, ChangedBy: suite.creator.ID})

	err := suite.service.DeleteProject(project.ID, suite.creator)
	suite.Require().NoError(err)

	var count int64
	suite.db.Model(&models.Project{}).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.Comment{}).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.CommentAttachment{}).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.TaskStatusHistory{}).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.ProjectMember{}).Count(&count)
	suite.Equal(int64(0), count)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
