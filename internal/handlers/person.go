package handlers

import (
	"net/http"

	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/dto"
	"github.com/AranyaAryaman/noJIRA/internal/middleware"
	"github.com/AranyaAryaman/noJIRA/internal/services"
	"github.com/gin-gonic/gin"
)

type PersonHandler struct {
	authService *services.AuthService
}

func NewPersonHandler(authService *services.AuthService) *PersonHandler {
	return &PersonHandler{authService: authService}
}

// Me returns the authenticated person's own profile
func (h *PersonHandler) Me(c *gin.Context) {
	actor := middleware.GetActor(c)
	c.JSON(http.StatusOK, dto.ToPersonDTO(*actor))
}

// GetPerson returns a person's public profile
func (h *PersonHandler) GetPerson(c *gin.Context) {
	personID, ok := pathID(c, "person_id")
	if !ok {
		return
	}

	person, err := h.authService.GetPerson(personID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPersonDTO(*person))
}

// SearchPeople finds people by name or email fragment
func (h *PersonHandler) SearchPeople(c *gin.Context) {
	query := c.Query("q")

	people, err := h.authService.SearchPeople(query)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"people": dto.ToPersonDTOs(people)})
}
