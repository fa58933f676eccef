package domain

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     int32
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// NewNotFound builds a NotFoundError for the given entity name and id.
func NewNotFound(entity string, id int32) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// BusinessRuleError reports a violated precondition or invariant of a
// lifecycle transition. Availability failures carry the full conflict list
// so callers can present a complete explanation.
type BusinessRuleError struct {
	Msg       string
	Conflicts []Conflict
}

func (e *BusinessRuleError) Error() string {
	if len(e.Conflicts) == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s (%d conflict(s))", e.Msg, len(e.Conflicts))
}

// NewBusinessRule builds a BusinessRuleError with a formatted message.
func NewBusinessRule(format string, args ...any) error {
	return &BusinessRuleError{Msg: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsBusinessRule reports whether err is (or wraps) a BusinessRuleError.
func IsBusinessRule(err error) bool {
	var br *BusinessRuleError
	return errors.As(err, &br)
}
