package handler

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// parseIDParam parses a numeric path parameter. inRange is false for ids that
// are well formed but can never have been assigned.
func parseIDParam(c *gin.Context, key string) (id uint, inRange bool, err error) {
	raw, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s", key)
	}
	if raw == 0 || raw > math.MaxUint32 {
		return 0, false, nil
	}
	return uint(raw), true, nil
}
