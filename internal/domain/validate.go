package domain

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateQuiz checks a quiz definition loaded from an external source.
func ValidateQuiz(q Quiz) error {
	if err := structValidator().Struct(q); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidQuiz, q.ID, err)
	}
	return nil
}

// ValidateCourses checks every course record.
func ValidateCourses(courses []Course) error {
	for _, c := range courses {
		if err := structValidator().Struct(c); err != nil {
			return fmt.Errorf("%w: course %d: %v", ErrInvalidCatalog, c.ID, err)
		}
	}
	return nil
}

// ValidateColleges checks every college record.
func ValidateColleges(colleges []College) error {
	for _, c := range colleges {
		if err := structValidator().Struct(c); err != nil {
			return fmt.Errorf("%w: college %d: %v", ErrInvalidCatalog, c.ID, err)
		}
	}
	return nil
}
