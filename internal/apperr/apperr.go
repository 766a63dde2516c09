// Package apperr defines the error taxonomy shared by repositories, services
// and storage adapters. Components raise these errors and propagate them
// unchanged; only the HTTP layer (see Handler) maps them to status codes.
// No component retries automatically.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ValidationError covers malformed or missing input: required fields,
// disallowed file types, extension/content-type mismatches, oversize uploads.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError covers references to entities that do not exist.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found (%v)", e.Entity, e.ID)
}

// NotFound builds a NotFoundError for the given entity and identifier.
func NotFound(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// EligibilityError is raised when an insurer does not cover a vessel category.
// Kept distinct from ValidationError so callers can render an actionable
// message instead of a generic 400.
type EligibilityError struct {
	InsurerID    int
	CategoryCode string
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("insurer %d does not cover vessel category %q", e.InsurerID, e.CategoryCode)
}

// StorageError wraps a storage backend failure (write, delete, resolve).
// The triggering database write must be rolled back by the caller so the
// database never references a file that failed to persist.
type StorageError struct {
	Op  string // "store", "delete", "resolve"
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a StorageError for the given operation.
func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// Handler is the Fiber ErrorHandler mapping the taxonomy to HTTP statuses:
// ValidationError 400, NotFoundError 404, EligibilityError 422,
// StorageError 502, fiber.Error pass-through, anything else 500.
func Handler(c *fiber.Ctx, err error) error {
	var (
		ve *ValidationError
		nf *NotFoundError
		el *EligibilityError
		se *StorageError
		fe *fiber.Error
	)
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Reason})
	case errors.As(err, &nf):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": nf.Error()})
	case errors.As(err, &el):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": el.Error()})
	case errors.As(err, &se):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "storage backend failure"})
	case errors.As(err, &fe):
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
