// Package respond translates service errors into HTTP responses.
package respond

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todoapp/services"
)

// Error maps the error kind to a status code. Expected rejections are
// logged as warnings; anything unrecognized is a 500 and logged in full,
// with only a generic message sent to the client.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		log.Printf("WARN %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAccessDenied):
		log.Printf("WARN %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidArgument):
		log.Printf("WARN %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// ParseID parses a positive integer path parameter. Zero and negative
// ids are invalid input, not missing entities.
func ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
