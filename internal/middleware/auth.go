package middleware

import (
	"errors"
	"strconv"
	"strings"

	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/AranyaAryaman/noJIRA/internal/constants"
	"github.com/AranyaAryaman/noJIRA/internal/database"
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// RequireAuth validates the bearer token and resolves the acting
// person, storing both the id and the loaded record on the context.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apperrors.AbortUnauthenticated(c, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			apperrors.AbortUnauthenticated(c, "Invalid authorization header")
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			apperrors.AbortUnauthenticated(c, "Invalid or expired token")
			return
		}

		personID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			apperrors.AbortUnauthenticated(c, "Invalid token subject")
			return
		}

		var person models.Person
		if err := database.GetDB().First(&person, personID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.AbortUnauthenticated(c, "Person no longer exists")
				return
			}
			apperrors.Respond(c, apperrors.Internal("Failed to load person", err))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPersonID, person.ID)
		c.Set(constants.ContextKeyActor, &person)
		c.Next()
	}
}

// GetPersonID returns the authenticated person id from the context
func GetPersonID(c *gin.Context) uint64 {
	id, _ := c.Get(constants.ContextKeyPersonID)
	personID, _ := id.(uint64)
	return personID
}

// GetActor returns the authenticated person record from the context
func GetActor(c *gin.Context) *models.Person {
	v, _ := c.Get(constants.ContextKeyActor)
	actor, _ := v.(*models.Person)
	return actor
}
