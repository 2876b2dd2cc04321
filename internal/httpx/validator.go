package httpx

import (
	"errors"
	"fmt"
	"reflect"

	"booktitles/internal/platform/validation"

	"github.com/go-playground/validator/v10"
)

// ValidateStruct returns one ErrorDetail per failed rule, or nil when s is valid.
func ValidateStruct(s interface{}) []ErrorDetail {
	err := validation.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ErrorDetail{{Message: err.Error()}}
	}

	details := make([]ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, ErrorDetail{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return details
}

func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	unit := "characters"
	if fe.Kind() == reflect.Slice {
		unit = "items"
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s %s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must have at most %s %s", field, param, unit)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
