package services

import (
	"reflect"
	"strings"

	"github.com/clique77/job-portal-sub001/internal/domain/errs"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// validateInput reports every failed field at once as a validation error.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs.Internal("input validation failed", err)
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = describe(fieldError)
	}
	return errs.Validation("invalid input", fields)
}

func describe(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid url"
	case "min":
		return "must be at least " + fieldError.Param()
	case "max":
		return "must be at most " + fieldError.Param()
	default:
		return "failed " + fieldError.Tag()
	}
}

// mergeFieldErrors folds extra field problems into a validation error.
func mergeFieldErrors(err error, extra map[string]string) error {
	if len(extra) == 0 {
		return err
	}
	if err == nil {
		return errs.Validation("invalid input", extra)
	}

	var domainErr *errs.Error
	if errors.As(err, &domainErr) && domainErr.Kind == errs.KindValidation {
		for field, problem := range extra {
			domainErr.Fields[field] = problem
		}
		return domainErr
	}
	return err
}
