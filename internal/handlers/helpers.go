package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/middleware"
)

// paramID reads a positive numeric path parameter. On failure the response
// has already been written.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

// sessionUserID is only called behind a session guard.
func sessionUserID(c *gin.Context) uint {
	id, _ := middleware.UserID(c)
	return id
}
