package wbs

import (
	"errors"
	"fmt"
)

// RuleCode identifies which family of business rule a rejection
// belongs to. Callers map these to user-facing responses; the Message
// is intended to be surfaced verbatim.
type RuleCode string

const (
	CodeNotFound          RuleCode = "NOT_FOUND"
	CodeTypeHierarchy     RuleCode = "TYPE_HIERARCHY"
	CodeBudgetContainment RuleCode = "BUDGET_CONTAINMENT"
	CodeInvalidDependency RuleCode = "INVALID_DEPENDENCY"
	CodeDeleteRestricted  RuleCode = "DELETE_RESTRICTED"
)

// RuleError is a business-rule rejection. It is expected and
// recoverable: nothing was written, and the message names the rule
// that was violated.
type RuleError struct {
	Code    RuleCode
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

func violation(code RuleCode, format string, args ...any) *RuleError {
	return &RuleError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsRuleError unwraps err into a *RuleError if one is in its chain.
func AsRuleError(err error) (*RuleError, bool) {
	var re *RuleError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
