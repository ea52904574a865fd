package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/constants"
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"github.com/AranyaAryaman/noJIRA/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration, login, and the people directory.
// Tokens are stateless HS256 JWTs carrying the person id as subject.
type AuthService struct {
	personRepo repository.PersonRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(personRepo repository.PersonRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		personRepo: personRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
	}
}

// RegisterInput represents input for registering a person
type RegisterInput struct {
	Name     string
	Email    string
	Nickname *string
	Password string
}

// Register creates a person with a bcrypt-hashed password. Email must
// be unique.
func (s *AuthService) Register(input RegisterInput) (*models.Person, error) {
	if input.Name == "" {
		return nil, apperrors.Validation("Name is required")
	}
	if input.Email == "" {
		return nil, apperrors.Validation("Email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, apperrors.Validation(fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	}

	if _, err := s.personRepo.FindByEmail(input.Email); err == nil {
		return nil, apperrors.Conflict("Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("Failed to check email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	person := &models.Person{
		Name:         input.Name,
		Email:        input.Email,
		Nickname:     input.Nickname,
		PasswordHash: string(hash),
	}
	if err := s.personRepo.Create(person); err != nil {
		return nil, apperrors.Internal("Failed to create person", err)
	}
	return person, nil
}

// Login verifies credentials and issues a bearer token.
func (s *AuthService) Login(email, password string) (string, *models.Person, error) {
	person, err := s.personRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.Unauthenticated("Invalid email or password")
		}
		return "", nil, apperrors.Internal("Failed to look up person", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(person.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.Unauthenticated("Invalid email or password")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", person.ID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, apperrors.Internal("Failed to sign token", err)
	}
	return token, person, nil
}

// GetPerson returns a person's public profile.
func (s *AuthService) GetPerson(personID uint64) (*models.Person, error) {
	person, err := s.personRepo.FindByID(personID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Person not found")
		}
		return nil, apperrors.Internal("Failed to load person", err)
	}
	return person, nil
}

// SearchPeople finds people whose name or email matches the query.
func (s *AuthService) SearchPeople(query string) ([]models.Person, error) {
	if query == "" {
		return nil, apperrors.Validation("Search query is required")
	}

	people, err := s.personRepo.Search(query, constants.PeopleSearchLimit)
	if err != nil {
		return nil, apperrors.Internal("Failed to search people", err)
	}
	return people, nil
}
