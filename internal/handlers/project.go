package handlers

import (
	"net/http"

	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/dto"
	"github.com/AranyaAryaman/noJIRA/internal/middleware"
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"github.com/AranyaAryaman/noJIRA/internal/services"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProject creates a project administered by the caller
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(actor, services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects lists the projects visible to the caller
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor := middleware.GetActor(c)
	includeArchived := c.Query("include_archived") == "true"

	projects, err := h.projectService.ListProjects(actor, includeArchived)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": dto.ToProjectDTOs(projects)})
}

// GetProject returns a project with members and linked teams
func (h *ProjectHandler) GetProject(c *gin.Context) {
	actor := middleware.GetActor(c)
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(projectID, actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*project))
}

// UpdateProject applies a partial update
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	actor := middleware.GetActor(c)
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsArchived  *bool   `json:"is_archived"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(projectID, actor, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		IsArchived:  req.IsArchived,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject deletes a project and its full contents
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	actor := middleware.GetActor(c)
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(projectID, actor); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// AddMember enrolls a person into the project
func (h *ProjectHandler) AddMember(c *gin.Context) {
	actor := middleware.GetActor(c)
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req struct {
		PersonID uint64             `json:"person_id" binding:"required"`
		Role     models.ProjectRole `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.projectService.AddMember(projectID, actor, req.PersonID, req.Role)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"project_id": member.ProjectID,
		"person_id":  member.PersonID,
		"role":       member.Role,
	})
}

// UpdateMemberRole changes a member's role
func (h *ProjectHandler) UpdateMemberRole(c *gin.Context) {
	actor := middleware.GetActor(c)
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	personID, ok := pathID(c, "person_id")
	if !ok {
		return
	}

	var req struct {
		Role models.ProjectRole `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projectService.UpdateMemberRole(projectID, actor, personID, req.Role); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// RemoveMember removes a person from the project
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	actor := middleware.GetActor(c)
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	personID, ok := pathID(c, "person_id")
	if !ok {
		return
	}

	if err := h.projectService.RemoveMember(projectID, actor, personID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

// LinkTeam attaches a team to the project
func (h *ProjectHandler) LinkTeam(c *gin.Context) {
	actor := middleware.GetActor(c)
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req struct {
		TeamID uint64 `json:"team_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projectService.LinkTeam(projectID, actor, req.TeamID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project_id": projectID, "team_id": req.TeamID})
}

// UnlinkTeam detaches a team from the project
func (h *ProjectHandler) UnlinkTeam(c *gin.Context) {
	actor := middleware.GetActor(c)
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}

	if err := h.projectService.UnlinkTeam(projectID, actor, teamID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team unlinked"})
}
