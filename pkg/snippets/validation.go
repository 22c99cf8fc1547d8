package snippets

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/agentstation/snipdeck/pkg/errors"
)

var validate = validator.New()

// Validate checks the record's required fields and that its category is a
// concrete key of reg. A nil reg uses the default registry.
func (s Snippet) Validate(reg *Registry) error {
	if reg == nil {
		reg = defaultRegistry
	}
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	if s.Category == All {
		return errors.NewValidationError("category", s.Category, "\"all\" is not a record category")
	}
	if !reg.Has(s.Category) {
		return errors.NewValidationError("category", s.Category, fmt.Sprintf("unknown category %q", s.Category))
	}
	return nil
}

// ValidateCatalog validates every record and checks that ids are unique.
// All failures are joined into the returned error.
func ValidateCatalog(reg *Registry, list []Snippet) error {
	var errs []error
	seen := make(map[string]int, len(list))
	for i, s := range list {
		if err := s.Validate(reg); err != nil {
			errs = append(errs, fmt.Errorf("snippet %d (%s): %w", i, s.ID, err))
		}
		if s.ID == "" {
			errs = append(errs, errors.NewValidationError("id", i, fmt.Sprintf("snippet %d has no id", i)))
			continue
		}
		if first, dup := seen[s.ID]; dup {
			errs = append(errs, errors.NewValidationError("id", s.ID,
				fmt.Sprintf("duplicate id %q at positions %d and %d", s.ID, first, i)))
			continue
		}
		seen[s.ID] = i
	}
	return errors.Join(errs...)
}

func formatValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WrapValidation("", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	field := ""
	for _, e := range fieldErrs {
		if field == "" {
			field = strings.ToLower(e.Field())
		}
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.NewValidationError(field, nil, strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
