package handlers

import (
	"log"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/chachabrian/umrah-travel-backend/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// Validation errors name fields by their json key.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

// respondError logs the raw cause and answers with the error's kind and
// user-facing message. Unclassified errors are reported as unavailable.
func respondError(c *gin.Context, err error, resource string) {
	appErr := apperr.FromDB(err, resource)
	if appErr.Err != nil {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), appErr.Err)
	}
	c.JSON(apperr.HTTPStatus(appErr.Kind), gin.H{"error": appErr.Message, "kind": appErr.Kind})
}

func badRequest(c *gin.Context, message string) {
	respondError(c, apperr.Validation(message), "")
}

// bindJSON decodes the body and answers 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, apperr.FromBinding(err), "")
		return false
	}
	return true
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
