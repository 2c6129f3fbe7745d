package middleware

import (
	"expvar"
	"strconv"

	"github.com/gin-gonic/gin"
)

var (
	requestsTotal    = expvar.NewInt("http_requests_total")
	requestsByStatus = expvar.NewMap("http_requests_by_status")
)

// Metrics counts requests by status class into expvar, served at /debug/vars.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		requestsTotal.Add(1)
		requestsByStatus.Add(strconv.Itoa(c.Writer.Status()/100)+"xx", 1)
	}
}
