package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// ReadAndValidateRequest binds the body into req, applies `default` tags and
// validates it. A nil result means req is ready to use.
func ReadAndValidateRequest(c echo.Context, req interface{}) []ValidationError {
	steps := []func() error{
		func() error { return c.Bind(req) },
		func() error { return defaults.Set(req) },
		func() error { return validate.StructCtx(c.Request().Context(), req) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return toValidationErrors(err)
		}
	}
	return nil
}

func toValidationErrors(err error) []ValidationError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		out := make([]ValidationError, len(fieldErrs))
		for i, fe := range fieldErrs {
			out[i] = fieldError(fe)
		}
		return out
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return []ValidationError{{Code: "ERR_BIND", Message: fmt.Sprint(he.Message)}}
	}
	return []ValidationError{{Code: "ERR_UNKNOWN", Message: err.Error()}}
}

func fieldError(fe validator.FieldError) ValidationError {
	ve := ValidationError{
		Code:  "ERR_" + strings.ToUpper(fe.Tag()),
		Field: fe.Field(),
	}
	switch fe.Tag() {
	case "required":
		ve.Message = fe.Field() + " is required"
	case "oneof":
		opts := strings.Fields(fe.Param())
		ve.Message = fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(opts, ", "))
		ve.Params = map[string]interface{}{"options": opts}
	case "gte":
		ve.Message = fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		ve.Params = map[string]interface{}{"min": fe.Param()}
	case "lte":
		ve.Message = fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
		ve.Params = map[string]interface{}{"max": fe.Param()}
	default:
		ve.Message = fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
	return ve
}
