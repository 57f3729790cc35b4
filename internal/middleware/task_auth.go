package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-report-api/internal/constants"
	apierrors "github.com/yukikurage/task-report-api/internal/errors"
)

// RequireTaskID parses the :id route parameter. Malformed ids are reported
// like unknown ones.
func RequireTaskID() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || taskID == 0 {
			apierrors.BadRequest(c, "No task found with this ID")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTaskID, taskID)
		c.Next()
	}
}

// GetTaskID retrieves the parsed task id from context
func GetTaskID(c *gin.Context) uint64 {
	return c.GetUint64(constants.ContextKeyTaskID)
}
