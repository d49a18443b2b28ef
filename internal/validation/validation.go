package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common validation errors
var (
	ErrInvalidUUID = fmt.Errorf("invalid UUID format")
	ErrEmptySlice  = fmt.Errorf("slice cannot be empty")
)

// Error reports every invalid field of a request at once, keyed by JSON field name.
// Handlers surface Fields as the details of a 400 response.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// maxNameLength matches the VARCHAR(100) name columns.
const maxNameLength = 100

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateUUIDs validates a slice of UUIDs
func ValidateUUIDs(ids []string) error {
	if len(ids) == 0 {
		return ErrEmptySlice
	}
	for _, id := range ids {
		if err := ValidateUUID(id); err != nil {
			return err
		}
	}
	return nil
}

// validateDate records a field error unless value is a YYYY-MM-DD date.
func validateDate(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errors[field] = fmt.Sprintf("%s is required", field)
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		errors[field] = fmt.Sprintf("%s must be in YYYY-MM-DD format", field)
	}
}

// checkPositive records a field error unless amount is above zero.
func checkPositive(errors map[string]string, field string, amount decimal.Decimal) {
	if !amount.IsPositive() {
		errors[field] = fmt.Sprintf("%s must be positive", field)
	}
}

// checkNonNegative records a field error when amount is below zero.
func checkNonNegative(errors map[string]string, field string, amount decimal.Decimal) {
	if amount.IsNegative() {
		errors[field] = fmt.Sprintf("%s cannot be negative", field)
	}
}
