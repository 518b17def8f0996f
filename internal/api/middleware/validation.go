package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"voicemail-whisper/internal/api/errors"
)

// Validator interface for domain validation
type Validator interface {
	Validate() error
}

// ValidateRequest binds a JSON body, then applies the request's own Validate.
// Details are keyed by the JSON field name.
func ValidateRequest(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		var details map[string]string
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			details = fieldDetails(req, "json", validationErrs)
		} else {
			details = map[string]string{"request": "invalid JSON format"}
		}
		return errors.NewValidationError("Validation failed", details)
	}

	return validateDomain(req)
}

// ValidateQuery binds query parameters. A value that is out of range or not a
// number is a bad request keyed by the parameter name, e.g. limit.
func ValidateQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		apiErr := errors.NewBadRequestError("Invalid query parameters")
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			apiErr.Details = fieldDetails(req, "form", validationErrs)
		} else {
			apiErr.Details = map[string]string{"query": "malformed value: " + err.Error()}
		}
		return apiErr
	}

	return validateDomain(req)
}

func validateDomain(req interface{}) error {
	if v, ok := req.(Validator); ok {
		return v.Validate()
	}
	return nil
}

func fieldDetails(req interface{}, tagKey string, errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		details[tagName(req, fe.StructField(), tagKey)] = describe(fe)
	}
	return details
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "is invalid"
	}
}

// tagName returns the wire name of a struct field, falling back to its lowercased Go name.
func tagName(req interface{}, field, tagKey string) string {
	t := reflect.TypeOf(req)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t != nil && t.Kind() == reflect.Struct {
		if sf, ok := t.FieldByName(field); ok {
			if name := strings.Split(sf.Tag.Get(tagKey), ",")[0]; name != "" && name != "-" {
				return name
			}
		}
	}
	return strings.ToLower(field)
}
