package models

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validatable is implemented by every persisted record.
type Validatable interface {
	Validate() error
}

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidateStruct runs the shared validator over any tagged struct, such as a
// request payload.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
