package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/go-usuarios/validation"
)

// Sentinel errors returned by the data-access operations.
var (
	ErrConstraintViolation = errors.New("constraint violation")
	ErrNotFound            = errors.New("not found")
)

// ValidationError lists the fields rejected before a write.
// It matches ErrConstraintViolation with errors.Is.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConstraintViolation, e.Violations)
}

func (e *ValidationError) Unwrap() error { return ErrConstraintViolation }

func violations(v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}

// storeError classifies errors coming back from a write.
func storeError(err error, what string) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s already exists", ErrConstraintViolation, what)
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	return err
}
