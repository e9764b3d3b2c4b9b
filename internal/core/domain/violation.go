package domain

import "fmt"

// ViolationKind classifies a write rejected by a storage constraint.
type ViolationKind string

const (
	ViolationNotNull ViolationKind = "not_null"
	ViolationUnique  ViolationKind = "unique"
)

// ConstraintViolation is returned by repositories when the storage engine
// rejects a write because of a declared column rule. Field is the column the
// engine reported; it may be empty when the engine does not name one.
type ConstraintViolation struct {
	Kind  ViolationKind
	Field string
	Err   error
}

func (v *ConstraintViolation) Error() string {
	if v.Field == "" {
		return fmt.Sprintf("%s constraint violated", v.Kind)
	}
	return fmt.Sprintf("%s constraint violated on column %q", v.Kind, v.Field)
}

func (v *ConstraintViolation) Unwrap() error { return v.Err }
