package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID parses the path parameter name as a positive ID.
func ParamID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
