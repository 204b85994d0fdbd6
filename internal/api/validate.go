package api

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterStructValidation(validateSeries, AssessmentSeries{})
	})
	return validate
}

// validateSeries requires every dimension series to line up with dates
func validateSeries(sl validator.StructLevel) {
	s := sl.Current().Interface().(AssessmentSeries)
	for i, series := range s.Series() {
		if len(series) != len(s.Dates) {
			sl.ReportError(series, Dimensions[i], Dimensions[i], "len_dates", fmt.Sprint(len(s.Dates)))
		}
	}
}

// validatePayload checks v against its struct tags. Slices and maps of
// structs are checked element by element; scalars pass through.
func validatePayload(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return validatorInstance().Struct(rv.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := validatePayload(rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

// Validate checks a create input against the same rules applied to
// responses, so bad documents are rejected before they are sent
func Validate(v any) error {
	return validatePayload(v)
}
