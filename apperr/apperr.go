// Package apperr defines the error taxonomy shared by every repository
// operation. Each error carries a machine-readable Reason code so the
// request layer can map it to a response without parsing messages.
package apperr

import "fmt"

// Validation marks malformed or inconsistent input, e.g. a non-positive
// quantity or a server assigned from another restaurant.
type Validation struct {
	Reason string
	Detail string
}

func (e *Validation) Error() string {
	return fmt.Sprintf("ValidationError: %s: %s", e.Reason, e.Detail)
}

// Conflict marks a uniqueness or cardinality violation, e.g. a second
// menu for a manager or a second payment for a bill.
type Conflict struct {
	Reason string
	Detail string
}

func (e *Conflict) Error() string {
	return fmt.Sprintf("ConflictError: %s: %s", e.Reason, e.Detail)
}

// Integrity marks a deletion blocked by a protected reference.
type Integrity struct {
	Reason string
	Detail string
}

func (e *Integrity) Error() string {
	return fmt.Sprintf("IntegrityError: %s: %s", e.Reason, e.Detail)
}

// State marks an illegal lifecycle transition, e.g. departing a customer
// twice or delivering an order twice.
type State struct {
	Reason string
	Detail string
}

func (e *State) Error() string {
	return fmt.Sprintf("StateError: %s: %s", e.Reason, e.Detail)
}

// NotFound marks a reference to a nonexistent entity. Its Reason code is
// always "not-found"; the entity name and id live in their own fields.
type NotFound struct {
	Reason string
	Entity string
	ID     uint
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("NotFoundError: %s %d does not exist", e.Entity, e.ID)
}

func NewValidation(reason, format string, args ...interface{}) error {
	return &Validation{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

func NewConflict(reason, format string, args ...interface{}) error {
	return &Conflict{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

func NewIntegrity(reason, format string, args ...interface{}) error {
	return &Integrity{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

func NewState(reason, format string, args ...interface{}) error {
	return &State{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

func NewNotFound(entity string, id uint) error {
	return &NotFound{Reason: "not-found", Entity: entity, ID: id}
}
