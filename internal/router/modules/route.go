package modules

import "github.com/gin-gonic/gin"

// Route is one entry of the route table. The registry builds the chain
// [auth guard if Protected] -> [Bind if set] -> Handler.
type Route struct {
	Method    string
	Path      string
	Protected bool
	Bind      gin.HandlerFunc
	Handler   gin.HandlerFunc
}
