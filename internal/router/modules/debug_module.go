package modules

import (
	"expvar"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DebugModule exposes expvar counters at /debug/vars.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/debug/vars", Handler: gin.WrapH(expvar.Handler())},
	}
}
