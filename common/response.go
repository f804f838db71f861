package common

import (
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func HandleError(c *gin.Context, err error, status int) {
	c.JSON(status, gin.H{"message": err.Error()})
}

// HandleValidationError renders request binding failures as a 422 with
// per-field messages: {"errors": {"email": ["The email field is required."]}}.
func HandleValidationError(c *gin.Context, err error) {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		errs := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			field := snakeCase(fe.Field())
			errs[field] = append(errs[field], fieldMessage(field, fe))
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{"body": []string{"The request body is malformed."}}})
}

// FieldErrors renders a 422 for failures found after binding, such as a
// uniqueness check or an unknown referenced id.
func FieldErrors(c *gin.Context, field string, messages ...string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{field: messages}})
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s field does not match.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

func snakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
