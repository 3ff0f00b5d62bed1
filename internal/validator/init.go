package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())
}

func GetValidator() *validator.Validate {
	return validate
}

// FailedTags returns the failing "field.tag" pairs of a validation error,
// e.g. "Second.nefield". Errors of any other type yield nil.
func FailedTags(err error) []string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	tags := make([]string, 0, len(errs))
	for _, fe := range errs {
		tags = append(tags, fe.Field()+"."+fe.Tag())
	}
	return tags
}
