package httputil

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// Options responds with an empty body and the HTTP Header "allow" set
// to OPTIONS and the methods passed in.
func Options(c *gin.Context, methods ...string) {
	c.Header("allow", strings.Join(append([]string{http.MethodOptions}, methods...), ", "))
	c.Render(http.StatusNoContent, render.JSON{})
}

func OptionsGet(c *gin.Context) {
	Options(c, http.MethodGet)
}

func OptionsPost(c *gin.Context) {
	Options(c, http.MethodPost)
}

func OptionsPatch(c *gin.Context) {
	Options(c, http.MethodPatch)
}
