package validators

import (
	"fmt"
	"strings"

	"github.com/CardLedger/CardLedger-Backend/src/models"
)

// Violation is one failed rule.
type Violation struct {
	Rule    string   `json:"rule"`
	Fields  []string `json:"fields"`
	Message string   `json:"message"`
}

// ValidationError collects every violated rule, in the order the rules ran.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return ""
	}
	messages := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		messages = append(messages, v.Message)
	}
	return strings.Join(messages, "; ")
}

// Has reports whether rule was violated.
func (e *ValidationError) Has(rule string) bool {
	for _, v := range e.Violations {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

func (e *ValidationError) add(rule, message string, fields ...string) {
	e.Violations = append(e.Violations, Violation{Rule: rule, Fields: fields, Message: message})
}

func (e *ValidationError) err() error {
	if e == nil || len(e.Violations) == 0 {
		return nil
	}
	return e
}

// NewValidationError builds a single-violation error for checks made outside the item rules.
func NewValidationError(rule, message string, fields ...string) *ValidationError {
	e := &ValidationError{}
	e.add(rule, message, fields...)
	return e
}

type IntentMismatchError struct {
	ItemID   int
	Expected models.Intent
	Actual   models.Intent
}

func (e *IntentMismatchError) Error() string {
	return fmt.Sprintf("Item %d intent field is required to be set to %s, but is currently set to %s",
		e.ItemID, e.Expected, e.Actual)
}

type StatusMismatchError struct {
	ItemID   int
	Expected models.Status
	Actual   models.Status
}

func (e *StatusMismatchError) Error() string {
	return fmt.Sprintf("Item %d status field is required to be set to %s, but is currently set to %s",
		e.ItemID, e.Expected, e.Actual)
}
