// Package models defines the core data types for the phonebook.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is returned when a required contact field is missing or blank.
var ErrValidation = errors.New("validation failed")

// Contact is a persisted phonebook record.
type Contact struct {
	ID    int64
	Name  string
	Phone string
	Email *string // nil when absent
}

// EmailOrEmpty returns the email address, or "" when none is stored.
func (c *Contact) EmailOrEmpty() string {
	if c.Email == nil {
		return ""
	}
	return *c.Email
}

// ContactInput is the caller-supplied data for a new contact.
type ContactInput struct {
	Name  string
	Phone string
	Email string // optional
}

// Normalize trims all fields and checks that name and phone are present.
// It returns a Contact ready for insertion (ID unset).
func (in *ContactInput) Normalize() (*Contact, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrValidation)
	}
	return &Contact{
		Name:  name,
		Phone: phone,
		Email: OptionalString(in.Email),
	}, nil
}

// ContactUpdate describes a partial edit. A nil field keeps the current value.
// Email set to an empty string clears the stored address.
type ContactUpdate struct {
	Name  *string
	Phone *string
	Email *string
}

// IsEmpty reports whether the update carries no fields at all.
func (u *ContactUpdate) IsEmpty() bool {
	return u == nil || (u.Name == nil && u.Phone == nil && u.Email == nil)
}

// Normalize trims supplied fields and rejects a blank name or phone.
func (u *ContactUpdate) Normalize() (*ContactUpdate, error) {
	out := &ContactUpdate{}
	if u == nil {
		return out, nil
	}
	if u.Name != nil {
		v := strings.TrimSpace(*u.Name)
		if v == "" {
			return nil, fmt.Errorf("%w: name cannot be blank", ErrValidation)
		}
		out.Name = &v
	}
	if u.Phone != nil {
		v := strings.TrimSpace(*u.Phone)
		if v == "" {
			return nil, fmt.Errorf("%w: phone cannot be blank", ErrValidation)
		}
		out.Phone = &v
	}
	if u.Email != nil {
		v := strings.TrimSpace(*u.Email)
		out.Email = &v
	}
	return out, nil
}

// Apply returns a copy of c with the update's fields applied.
// The update is expected to be normalized.
func (u *ContactUpdate) Apply(c Contact) Contact {
	if u == nil {
		return c
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.Email != nil {
		c.Email = OptionalString(*u.Email)
	}
	return c
}

// ImportResult is returned from the Service import operations.
type ImportResult struct {
	Imported int
	Skipped  int
}

// OptionalString maps blank input to nil and anything else to a trimmed pointer.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
