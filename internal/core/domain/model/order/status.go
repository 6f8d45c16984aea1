package order

import (
	"marketplace/internal/core/domain/model/principal"
	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. The legal transitions
// form a DAG with two terminal nodes:
//
//	Pending ──> Confirmed ──> Preparing ──> ReadyForPickup ──> PickedUp ──> InTransit ──> Delivered
//	   │             │
//	   └──> Cancelled <──┘
//
// Delivered and Cancelled are terminal; no transition leaves them.
// The transition table is an explicit adjacency map so that adding a state
// forces every call site to be revisited.
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota

	StatusPending
	StatusConfirmed
	StatusPreparing
	StatusReadyForPickup
	StatusPickedUp
	StatusInTransit
	StatusDelivered
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "UNKNOWN",
		StatusPending:        "PENDING",
		StatusConfirmed:      "CONFIRMED",
		StatusPreparing:      "PREPARING",
		StatusReadyForPickup: "READY_FOR_PICKUP",
		StatusPickedUp:       "PICKED_UP",
		StatusInTransit:      "IN_TRANSIT",
		StatusDelivered:      "DELIVERED",
		StatusCancelled:      "CANCELLED",
	}
}

// legalTransitions is the adjacency map of the order state machine.
// Cancelled is reachable only from Pending and Confirmed.
func legalTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:        {StatusConfirmed, StatusCancelled},
		StatusConfirmed:      {StatusPreparing, StatusCancelled},
		StatusPreparing:      {StatusReadyForPickup},
		StatusReadyForPickup: {StatusPickedUp},
		StatusPickedUp:       {StatusInTransit},
		StatusInTransit:      {StatusDelivered},
		StatusDelivered:      {},
		StatusCancelled:      {},
	}
}

// transitionRoles maps each target status to the single role allowed to set it.
// Each status is settable by exactly one role; the looser rule where a
// restaurant owner could also drive delivery statuses is intentionally not
// supported.
func transitionRoles() map[Status]principal.Role {
	return map[Status]principal.Role{
		StatusConfirmed:      principal.RoleRestaurantOwner,
		StatusPreparing:      principal.RoleRestaurantOwner,
		StatusReadyForPickup: principal.RoleRestaurantOwner,
		StatusPickedUp:       principal.RoleDriver,
		StatusInTransit:      principal.RoleDriver,
		StatusDelivered:      principal.RoleDriver,
		StatusCancelled:      principal.RoleCustomer,
	}
}

// Validate checks the Status value belongs to the closed set.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidError("status")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// String returns the wire name of the status, e.g. "READY_FOR_PICKUP".
// Implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ToStatus parses a wire-format status name.
func ToStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidError("status")
}

// IsTerminal reports whether no transition leaves this status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether next is directly reachable from s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range legalTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransition returns InvalidStateTransition when next is not a legal
// successor of s, carrying the from/to detail for the caller.
func (s Status) ValidateTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(next) {
		return errs.NewInvalidStateTransitionError("order", s.String(), next.String())
	}
	return nil
}

// RoleAllowedToSet returns the single role entitled to move an order into the
// given status. The second return is false for statuses no role may set
// directly (Pending is entered only at creation).
func RoleAllowedToSet(next Status) (principal.Role, bool) {
	role, ok := transitionRoles()[next]
	return role, ok
}
