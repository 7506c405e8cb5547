package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New(validator.WithRequiredStructEnabled())

// UserInput carries the fields of a new account.
type UserInput struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=6,max=72"`
	Nickname string `validate:"max=50"`
	IsAdmin  bool
}

// QuestionInput carries the editable fields of a question.
type QuestionInput struct {
	Text     string    `validate:"required,max=4000"`
	Choices  [4]string `validate:"dive,required,max=1000"`
	Correct  int       `validate:"min=1,max=4"`
	Category string    `validate:"required,max=100"`
	Hint     string    `validate:"max=4000"`
	URL      string    `validate:"omitempty,url,max=2000"`
}

// validateStruct wraps validation failures in ErrInvalidInput with a readable
// list of the offending fields.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}
