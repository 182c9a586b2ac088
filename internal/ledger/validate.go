package ledger

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/loaishar/RealEstateManager/internal/model"
)

var validate = validator.New()

// draftFieldNames maps Draft struct fields to the names shown to users.
var draftFieldNames = map[string]string{
	"Milestone": "milestone",
	"DueDate":   "due date",
	"Amount":    "amount",
}

// ValidateDraft checks that a draft has a milestone, a due date and an
// amount. All missing fields are reported together.
func ValidateDraft(d model.Draft) error {
	d = normalizeDraft(d)
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := &ValidationError{}
	for _, fe := range verrs {
		name, ok := draftFieldNames[fe.StructField()]
		if !ok {
			name = strings.ToLower(fe.StructField())
		}
		ve.Fields = append(ve.Fields, FieldError{
			Field:   name,
			Message: name + " is required",
		})
	}
	return ve
}

func normalizeDraft(d model.Draft) model.Draft {
	d.Milestone = strings.TrimSpace(d.Milestone)
	d.DueDate = model.DateOf(d.DueDate)
	return d
}
