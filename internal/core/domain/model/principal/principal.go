// Package principal models the pre-authenticated acting identity. Credential
// issuance and validation live outside the core; a principal arrives already
// resolved to a subject and a role.
package principal

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Role is the closed set of marketplace roles.
type Role string

const (
	RoleCustomer        Role = "CUSTOMER"
	RoleRestaurantOwner Role = "RESTAURANT_OWNER"
	RoleDriver          Role = "DRIVER"
)

var validRoles = map[Role]struct{}{
	RoleCustomer:        {},
	RoleRestaurantOwner: {},
	RoleDriver:          {},
}

// ToRole parses a role string, rejecting anything outside the closed set.
func ToRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := validRoles[r]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("role", errors.New(s+" is not a valid role"))
	}
	return r, nil
}

// Principal is the acting identity attached to a request.
// The zero value represents an absent principal and fails validation.
type Principal struct {
	subjectID kernel.UUID
	email     string
	role      Role
}

// New creates a principal from a resolved identity.
func New(subjectID kernel.UUID, email string, role Role) (Principal, error) {
	if err := subjectID.Validate(); err != nil {
		return Principal{}, errs.NewUnauthenticatedError("principal subject is missing")
	}
	if _, ok := validRoles[role]; !ok {
		return Principal{}, errs.NewValueIsInvalidError("role")
	}
	return Principal{subjectID: subjectID, email: email, role: role}, nil
}

// Validate reports whether the principal is present.
// An absent principal yields Unauthenticated, per the error taxonomy.
func (p Principal) Validate() error {
	if err := p.subjectID.Validate(); err != nil {
		return errs.NewUnauthenticatedError("principal is missing")
	}
	return nil
}

// SubjectID returns the authenticated subject identifier.
func (p Principal) SubjectID() kernel.UUID {
	return p.subjectID
}

// Email returns the subject's email, when the identity provider supplied one.
func (p Principal) Email() string {
	return p.email
}

// Role returns the principal's role.
func (p Principal) Role() Role {
	return p.role
}

// HasRole reports whether the principal carries the given role.
func (p Principal) HasRole(role Role) bool {
	return p.role == role
}
