package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-bookmarks-api/pkg/response"
	"github.com/oksasatya/go-bookmarks-api/pkg/validation"
)

const bodyKey = "request_body"

// BindJSON decodes and validates the body into T before the handler runs.
// Invalid input aborts with 400 and per-field details.
func BindJSON[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req T
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			return
		}
		c.Set(bodyKey, &req)
		c.Next()
	}
}

// Body returns the value stored by BindJSON[T].
func Body[T any](c *gin.Context) *T {
	v, ok := c.Get(bodyKey)
	if !ok {
		return nil
	}
	req, _ := v.(*T)
	return req
}
