package response

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Alerts writes the X-<app>-alert, X-<app>-params and X-<app>-error headers
// clients use to show notifications after a write.
type Alerts struct {
	App string
}

func (a Alerts) header(suffix string) string {
	return "X-" + a.App + "-" + suffix
}

func (a Alerts) set(c *gin.Context, message, param string) {
	c.Header(a.header("alert"), message)
	c.Header(a.header("params"), param)
}

func (a Alerts) Created(c *gin.Context, entity string, id int64) {
	a.set(c, fmt.Sprintf("A new %s is created with identifier %d", entity, id), strconv.FormatInt(id, 10))
}

func (a Alerts) Updated(c *gin.Context, entity string, id int64) {
	a.set(c, fmt.Sprintf("A %s is updated with identifier %d", entity, id), strconv.FormatInt(id, 10))
}

func (a Alerts) Deleted(c *gin.Context, entity string, id int64) {
	a.set(c, fmt.Sprintf("A %s is deleted with identifier %d", entity, id), strconv.FormatInt(id, 10))
}

// Failure marks a rejected write with the error key and the entity name.
func (a Alerts) Failure(c *gin.Context, entity, code string) {
	c.Header(a.header("error"), "error."+code)
	c.Header(a.header("params"), entity)
}
