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

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// CreateTeam creates a team owned by the caller
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(actor, services.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamDTO(*team))
}

// ListTeams lists the caller's teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	actor := middleware.GetActor(c)

	teams, err := h.teamService.ListTeams(actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": dto.ToTeamDTOs(teams)})
}

// GetTeam returns a single team
func (h *TeamHandler) GetTeam(c *gin.Context) {
	actor := middleware.GetActor(c)
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(teamID, actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

// UpdateTeam applies a partial update
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	actor := middleware.GetActor(c)
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.UpdateTeam(teamID, actor, services.UpdateTeamInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

// DeleteTeam deletes a team
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	actor := middleware.GetActor(c)
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(teamID, actor); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team deleted"})
}

// AddMember enrolls a person into the team
func (h *TeamHandler) AddMember(c *gin.Context) {
	actor := middleware.GetActor(c)
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}

	var req struct {
		PersonID uint64          `json:"person_id" binding:"required"`
		Role     models.TeamRole `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.teamService.AddMember(teamID, actor, req.PersonID, req.Role)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"team_id":   member.TeamID,
		"person_id": member.PersonID,
		"role":      member.Role,
	})
}

// UpdateMemberRole changes a member's role
func (h *TeamHandler) UpdateMemberRole(c *gin.Context) {
	actor := middleware.GetActor(c)
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}
	personID, ok := pathID(c, "person_id")
	if !ok {
		return
	}

	var req struct {
		Role models.TeamRole `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.teamService.UpdateMemberRole(teamID, actor, personID, req.Role); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// RemoveMember removes a person from the team
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	actor := middleware.GetActor(c)
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}
	personID, ok := pathID(c, "person_id")
	if !ok {
		return
	}

	if err := h.teamService.RemoveMember(teamID, actor, personID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

// ListMembers lists the team's members
func (h *TeamHandler) ListMembers(c *gin.Context) {
	actor := middleware.GetActor(c)
	teamID, ok := pathID(c, "team_id")
	if !ok {
		return
	}

	members, err := h.teamService.ListMembers(teamID, actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": dto.ToTeamMemberDTOs(members)})
}
