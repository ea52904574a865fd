package handlers

import (
	"fmt"
	"strconv"

	"github.com/AranyaAryaman/noJIRA/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// pathID parses a numeric path parameter. On failure it writes the
// error response and returns ok=false.
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return id, true
}
