package models

import (
	"fmt"
	"strings"

	"github.com/nishantd01/grud/core"
)

// User is a row of the users table, decoded as-is from the users API
type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

type NewUserInput struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required"`
	Website string `json:"website" form:"website" binding:"required"`
}

// Normalize trims every field and rejects the input if any is left blank
func (in NewUserInput) Normalize() (NewUserInput, error) {
	out := NewUserInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Website: strings.TrimSpace(in.Website),
	}
	switch {
	case out.Name == "":
		return out, fmt.Errorf("name is required: %w", core.ErrInvalidInput)
	case out.Email == "":
		return out, fmt.Errorf("email is required: %w", core.ErrInvalidInput)
	case out.Website == "":
		return out, fmt.Errorf("website is required: %w", core.ErrInvalidInput)
	}
	return out, nil
}

// Editable user fields
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldWebsite = "website"
)

var EditableFields = []string{FieldName, FieldEmail, FieldWebsite}

type FieldEdit struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// WithField returns a copy of u with one editable field replaced
func (u User) WithField(key, value string) (User, error) {
	switch key {
	case FieldName:
		u.Name = value
	case FieldEmail:
		u.Email = value
	case FieldWebsite:
		u.Website = value
	default:
		return u, fmt.Errorf("field %q is not editable: %w", key, core.ErrInvalidInput)
	}
	return u, nil
}
