package validation

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const malformedBodyMessage = "Request body must be a JSON object."

type ErrorResponse struct {
	Error string `json:"error" example:"Author not found"`
}

type ValidationErrorResponse struct {
	Errors []string `json:"errors" example:"Name is required."`
}

type MessageResponse struct {
	Message string `json:"message" example:"Author created successfully"`
	ID      int64  `json:"id,omitempty" example:"1"`
}

// BindAndValidateJSON decodes the request body into an Input and runs check
// over it. On failure it aborts with 400 and returns false.
func BindAndValidateJSON(c *gin.Context, check func(Input) []string) (Input, bool) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil || in == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrorResponse{
			Errors: []string{malformedBodyMessage},
		})
		return nil, false
	}

	if errs := check(in); len(errs) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrorResponse{
			Errors: errs,
		})
		return nil, false
	}

	return in, true
}
