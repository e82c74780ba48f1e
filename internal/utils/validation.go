package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Shared validator instance; building one per request would recompile
// every struct's validation cache.
var validate = validator.New()

// BindAndValidate binds the JSON request body into obj and runs struct
// validation on it. On failure it writes the 400 response and returns
// false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		BadRequest(c, "Invalid request payload: "+err.Error())
		return false
	}
	if err := validate.Struct(obj); err != nil {
		BadRequest(c, "Validation failed: "+describeValidationError(err))
		return false
	}
	return true
}

// describeValidationError flattens validator errors into one
// field-by-field message.
func describeValidationError(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := e.Field() + " failed the " + e.Tag()
		if e.Param() != "" {
			msg += "=" + e.Param()
		}
		parts = append(parts, msg+" check")
	}
	return strings.Join(parts, ", ")
}
