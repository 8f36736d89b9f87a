package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// bindJSON decodes the request body into req. Fields listed in nonNullable
// may be omitted but must not be sent as an explicit null.
func bindJSON(c *gin.Context, req interface{}, nonNullable ...string) error {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		return err
	}
	if len(nonNullable) == 0 {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&fields, binding.JSON); err != nil {
		return err
	}
	for _, name := range nonNullable {
		if raw, ok := fields[name]; ok && string(raw) == "null" {
			return fmt.Errorf("field '%s' must not be null", name)
		}
	}
	return nil
}
