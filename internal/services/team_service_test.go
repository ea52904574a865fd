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

// TeamServiceTestSuite defines the test suite for TeamService
type TeamServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TeamService
	creator *models.Person
}

// SetupTest runs before each test
func (suite *TeamServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = database.MigrateWith(suite.db)
	suite.Require().NoError(err)

	engine := access.NewEngine(suite.db)
	suite.service = NewTeamService(
		repository.NewTeamRepository(suite.db),
		repository.NewPersonRepository(suite.db),
		engine,
	)

	suite.creator = suite.createTestPerson("creator@example.com")
}

// TearDownTest runs after each test
func (suite *TeamServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TeamServiceTestSuite) createTestPerson(email string) *models.Person {
	person := &models.Person{
		Name:         email,
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(person)
	return person
}

func (suite *TeamServiceTestSuite) createTeam() *models.Team {
	team, err := suite.service.CreateTeam(suite.creator, CreateTeamInput{Name: "Test Team"})
	suite.Require().NoError(err)
	return team
}

func (suite *TeamServiceTestSuite) TestCreateEnrollsCreatorAsOwner() {
	team := suite.createTeam()

	var member models.TeamMember
	err := suite.db.Where("team_id = ? AND person_id = ?", team.ID, suite.creator.ID).First(&member).Error
	suite.Require().NoError(err)
	suite.Equal(models.TeamRoleOwner, member.Role)
}

func (suite *TeamServiceTestSuite) TestMemberLifecycle() {
	team := suite.createTeam()
	person := suite.createTestPerson("member@example.com")

	member, err := suite.service.AddMember(team.ID, suite.creator, person.ID, "")
	suite.Require().NoError(err)
	suite.Equal(models.TeamRoleMember, member.Role)

	_, err = suite.service.AddMember(team.ID, suite.creator, person.ID, models.TeamRoleMember)
	suite.True(apperrors.IsConflict(err))

	err = suite.service.UpdateMemberRole(team.ID, suite.creator, person.ID, models.TeamRoleOwner)
	suite.Require().NoError(err)

	err = suite.service.RemoveMember(team.ID, suite.creator, person.ID)
	suite.Require().NoError(err)

	err = suite.service.RemoveMember(team.ID, suite.creator, person.ID)
	suite.True(apperrors.IsNotFound(err))
}

func (suite *TeamServiceTestSuite) TestOwnerOperationsRequireOwner() {
	team := suite.createTeam()
	member := suite.createTestPerson("member@example.com")
	target := suite.createTestPerson("target@example.com")

	_, err := suite.service.AddMember(team.ID, suite.creator, member.ID, models.TeamRoleMember)
	suite.Require().NoError(err)

	_, err = suite.service.AddMember(team.ID, member, target.ID, models.TeamRoleMember)
	suite.True(apperrors.IsAccessDenied(err))

	err = suite.service.DeleteTeam(team.ID, member)
	suite.True(apperrors.IsAccessDenied(err))

	// plain members can still read
	_, err = suite.service.GetTeam(team.ID, member)
	suite.NoError(err)
	_, err = suite.service.ListMembers(team.ID, member)
	suite.NoError(err)
}

func (suite *TeamServiceTestSuite) TestDeleteRemovesMembershipsAndLinks() {
	team := suite.createTeam()

	project := &models.Project{Name: "Test Project", CreatedBy: suite.creator.ID}
	suite.db.Create(project)
	suite.db.Create(&models.ProjectTeam{ProjectID: project.ID, TeamID: team.ID})

	err := suite.service.DeleteTeam(team.ID, suite.creator)
	suite.Require().NoError(err)

	var count int64
	suite.db.Model(&models.Team{}).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.TeamMember{}).Count(&count)
	suite.Equal(int64(0), count)
	suite.db.Model(&models.ProjectTeam{}).Count(&count)
	suite.Equal(int64(0), count)

	// the linked project itself survives
	suite.db.Model(&models.Project{}).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *TeamServiceTestSuite) TestListTeamsCoversCreatedAndJoined() {
	team := suite.createTeam()

	member := suite.createTestPerson("member@example.com")
	_, err := suite.service.AddMember(team.ID, suite.creator, member.ID, models.TeamRoleMember)
	suite.Require().NoError(err)

	teams, err := suite.service.ListTeams(member)
	suite.Require().NoError(err)
	suite.Require().Len(teams, 1)
	suite.Equal(team.ID, teams[0].ID)

	teams, err = suite.service.ListTeams(suite.creator)
	suite.Require().NoError(err)
	suite.Len(teams, 1)
}

func TestTeamServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TeamServiceTestSuite))
}
