package dto

import (
	"time"

	"github.com/AranyaAryaman/noJIRA/internal/models"
)

// PersonDTO represents a person in API responses
type PersonDTO struct {
	ID       uint64  `json:"person_id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Nickname *string `json:"nickname"`
}

// PersonBriefDTO is the minimal person shape embedded in other responses
type PersonBriefDTO struct {
	ID   uint64 `json:"person_id"`
	Name string `json:"name"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token     string    `json:"token"`
	Person    PersonDTO `json:"person"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToPersonDTO converts a person to DTO
func ToPersonDTO(person models.Person) PersonDTO {
	return PersonDTO{
		ID:       person.ID,
		Name:     person.Name,
		Email:    person.Email,
		Nickname: person.Nickname,
	}
}

// ToPersonBriefDTO converts a person to its embedded form
func ToPersonBriefDTO(person *models.Person) *PersonBriefDTO {
	if person == nil || person.ID == 0 {
		return nil
	}
	return &PersonBriefDTO{ID: person.ID, Name: person.Name}
}

// ToPersonDTOs converts a slice of people to DTOs
func ToPersonDTOs(people []models.Person) []PersonDTO {
	dtos := make([]PersonDTO, len(people))
	for i, p := range people {
		dtos[i] = ToPersonDTO(p)
	}
	return dtos
}
