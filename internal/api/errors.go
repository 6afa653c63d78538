package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-occupancy-backend/internal/store"
)

// writeError maps the store's sentinel errors onto HTTP status codes and
// renders a uniform error body. Unknown errors are logged and surface as 500
// without their message, so internals stay out of responses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
