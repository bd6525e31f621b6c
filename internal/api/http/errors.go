package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/notes"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/tree"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/vfs"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/window"
)

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, window.ErrUnknownApp),
		errors.Is(err, vfs.ErrNotFound),
		errors.Is(err, notes.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, vfs.ErrNameTaken):
		return http.StatusConflict
	case errors.Is(err, vfs.ErrNotFolder),
		errors.Is(err, vfs.ErrInvalidName),
		errors.Is(err, vfs.ErrInvalidFile),
		errors.Is(err, vfs.ErrRootReadonly),
		errors.Is(err, tree.ErrCycle),
		errors.Is(err, tree.ErrNotParent):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context, what, id string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found", "id": id})
}
