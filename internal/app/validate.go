package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"stayinn/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their json names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// checkDraft turns validator failures into user-facing ValidationErrors,
// reporting only the first offending field.
func checkDraft(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return domain.Validationf("%s is required", fe.Field())
		case "datetime":
			return domain.Validationf("%s must be a date in YYYY-MM-DD format", fe.Field())
		case "gte", "lte", "gt":
			return domain.Validationf("%s is out of range", fe.Field())
		default:
			return domain.Validationf("%s is invalid", fe.Field())
		}
	}
	return domain.Validationf("%s", err.Error())
}

func hotelKey(id int64) string    { return fmt.Sprintf("hotel:%d", id) }
func favCountKey(id int64) string { return fmt.Sprintf("favcount:%d", id) }
