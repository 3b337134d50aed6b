package web

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type PostForm struct {
	Text    string `validate:"required"`
	GroupID *uint
}

type CommentForm struct {
	Text string `validate:"required"`
}

type SignupForm struct {
	Username  string `validate:"required,alphanum,min=3,max=150"`
	FirstName string `validate:"max=150"`
	LastName  string `validate:"max=150"`
	Password  string `validate:"required,min=6"`
}

type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// fieldErrors turns a validator error into per-field messages keyed by the
// struct field name convenient for template lookups. The form pages re-render
// with these instead of failing the request.
func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	messages := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		messages["Form"] = "invalid input"
		return messages
	}

	for _, ferr := range verrs {
		switch ferr.Tag() {
		case "required":
			messages[ferr.Field()] = "This field is required."
		case "min":
			messages[ferr.Field()] = "Too short (minimum " + ferr.Param() + " characters)."
		case "max":
			messages[ferr.Field()] = "Too long (maximum " + ferr.Param() + " characters)."
		case "alphanum":
			messages[ferr.Field()] = "Only letters and digits are allowed."
		default:
			messages[ferr.Field()] = "Invalid value."
		}
	}

	return messages
}
