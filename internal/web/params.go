package web

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// pathID binds a numeric route parameter using OpenAPI simple style.
func pathID(c *gin.Context, name string) (int64, error) {
	var id int64
	if err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, c.Param(name), &id); err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid %s: %d", name, id)
	}
	return id, nil
}

// queryID reads an optional numeric query value; anything unusable is zero.
func queryID(c *gin.Context, name string) int64 {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
