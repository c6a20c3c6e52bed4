package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/stackadvisor-backend/internal/http/response"
	"github.com/yungbote/stackadvisor-backend/internal/platform/apierr"
)

var errNoDatabase = errors.New("database not configured")

// pathUUID parses a path parameter. A malformed id is reported as notFoundMsg
// so that it looks the same as an id that does not exist.
func pathUUID(c *gin.Context, name, notFoundMsg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		e := apierr.NotFound(notFoundMsg)
		response.RespondError(c, e.Status, e.Code, e)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, 400, "invalid_request", errors.New("Invalid request body"))
		return false
	}
	return true
}
