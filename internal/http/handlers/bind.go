package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON decodes and shape-checks the body against the DTO's binding
// tags. Field-level format rules live in the domain factories; this
// only rejects bodies that are not even the right shape.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		RespondBadRequest(ctx, "REQUIRED_FIELD_MISSING", bindErrorMessage(err))

		return false
	}

	return true
}

func bindErrorMessage(err error) string {
	var validatorErrs validator.ValidationErrors

	if errors.As(err, &validatorErrs) {
		fields := make([]string, 0, len(validatorErrs))

		for _, fe := range validatorErrs {
			fields = append(fields, strings.ToLower(fe.Field()[:1])+fe.Field()[1:])
		}

		return "missing or invalid fields: " + strings.Join(fields, ", ")
	}

	var syntaxErr *json.SyntaxError

	if errors.As(err, &syntaxErr) {
		return "request body is not valid JSON"
	}

	var typeErr *json.UnmarshalTypeError

	if errors.As(err, &typeErr) {
		if typeErr.Field != "" {
			return "field " + typeErr.Field + " has the wrong type"
		}

		return "request body has the wrong shape"
	}

	return "invalid request body"
}
