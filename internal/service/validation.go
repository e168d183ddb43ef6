package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	// MaxNodeIDLength bounds ids accepted in requests.
	MaxNodeIDLength = 128
	// MaxWindowLimit bounds the number of children returned by one request.
	MaxWindowLimit = 1000
	// MaxBatchIDs bounds the number of ids in one batch request.
	MaxBatchIDs = 1000
	// MaxSearchLimit bounds the number of search matches.
	MaxSearchLimit = 100
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("nodeid", validateNodeID)
}

// validateNodeID accepts an empty value or a bounded id without whitespace.
func validateNodeID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if len(id) > MaxNodeIDLength {
		return false
	}
	return strings.IndexFunc(id, unicode.IsSpace) < 0
}

// validateRequest runs struct tag validation and reports the first failure
// as a *ValidationError.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: fe.Field(), Message: describe(fe)}
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	case "nodeid":
		return fmt.Sprintf("must be an id of at most %d characters without whitespace", MaxNodeIDLength)
	default:
		return "failed " + fe.Tag() + " check"
	}
}
