package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var reportValidator = validator.New()

// ValidateReport checks the intake form before it goes anywhere near the
// network. Failures come back as a single ValidationError listing the
// offending fields.
func ValidateReport(r CaseReport) error {
	err := reportValidator.Struct(r)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return &ValidationError{Msg: err.Error()}
	}

	msgs := make([]string, 0, len(invalid))
	for _, fe := range invalid {
		msgs = append(msgs, reportFieldMessage(fe))
	}
	return &ValidationError{Msg: strings.Join(msgs, "; ")}
}

func reportFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "DrugName":
		return "drug name is required"
	case "Reaction":
		return "reaction description is required"
	case "Phone":
		return "contact number must be 10 digits"
	case "Language":
		return "language must be en or hi"
	}
	return fe.Field() + " is invalid"
}
