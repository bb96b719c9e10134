package customers

import "errors"

var (
	// ErrCustomerNotFound is returned when no customer matches the lookup.
	ErrCustomerNotFound = errors.New("customers: not found")

	// ErrPhoneTaken is returned when a create collides with the phone
	// uniqueness constraint.
	ErrPhoneTaken = errors.New("customers: phone already registered")
)
