package agent

import (
	"context"
	"errors"
	"strings"
)

// Classification is the fine-grained failure class used by retry decisions.
type Classification string

const (
	ClassificationValidation     Classification = "validation"
	ClassificationTimeout        Classification = "timeout"
	ClassificationNetwork        Classification = "network"
	ClassificationRateLimit      Classification = "rate-limit"
	ClassificationCircuitBreaker Classification = "circuit-breaker"
	ClassificationTemporary      Classification = "temporary"
	ClassificationUnknown        Classification = "unknown"
)

// Category is the coarse failure class reported to callers.
type Category string

const (
	CategoryValidation     Category = "validation"
	CategoryTimeout        Category = "timeout"
	CategoryCircuitBreaker Category = "circuit-breaker"
	CategorySystem         Category = "system"
	CategoryExecution      Category = "execution"
)

// Category maps a classification to the coarse category callers handle.
func (c Classification) Category() Category {
	switch c {
	case ClassificationValidation:
		return CategoryValidation
	case ClassificationTimeout:
		return CategoryTimeout
	case ClassificationCircuitBreaker:
		return CategoryCircuitBreaker
	case ClassificationNetwork, ClassificationRateLimit, ClassificationTemporary:
		return CategorySystem
	default:
		return CategoryExecution
	}
}

// Error is a structured execution failure. Units of work may return it
// directly to pre-classify their failures and bypass the string heuristics
// in Classify.
type Error struct {
	Code           string         `json:"code"`
	Message        string         `json:"message"`
	Classification Classification `json:"classification,omitempty"`
	Category       Category       `json:"category"`
	Retryable      bool           `json:"retryable"`

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// NewError builds a pre-classified execution error.
func NewError(code, message string, classification Classification) *Error {
	return &Error{
		Code:           code,
		Message:        message,
		Classification: classification,
		Category:       classification.Category(),
	}
}

// WrapError builds a pre-classified execution error around a cause.
func WrapError(code, message string, classification Classification, cause error) *Error {
	err := NewError(code, message, classification)
	err.cause = cause

	return err
}

// classificationHints maps lowercase substrings of error text to a
// classification. Order matters: earlier entries win.
var classificationHints = []struct {
	substrings     []string
	classification Classification
}{
	{[]string{"circuit breaker", "circuit-breaker"}, ClassificationCircuitBreaker},
	{[]string{"rate limit", "rate-limit", "429", "too many requests"}, ClassificationRateLimit},
	{[]string{"timeout", "timed out", "deadline exceeded"}, ClassificationTimeout},
	{[]string{"connection", "network", "dns", "unreachable", "refused", "broken pipe", "reset by peer"}, ClassificationNetwork},
	{[]string{"validation", "invalid", "malformed", "bad request"}, ClassificationValidation},
	{[]string{"temporar", "unavailable", "503", "try again"}, ClassificationTemporary},
}

// Classify determines the failure classification of an error. Pre-classified
// *Error values win; context deadline errors classify as timeout; otherwise
// the error text is matched against known substrings. Unmatched errors are
// ClassificationUnknown. The string matching is inherently heuristic and
// exists for compatibility with units of work that only surface plain errors.
func Classify(err error) Classification {
	if err == nil {
		return ClassificationUnknown
	}

	var agentErr *Error
	if errors.As(err, &agentErr) && agentErr.Classification != "" {
		return agentErr.Classification
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ClassificationTimeout
	}

	msg := strings.ToLower(err.Error())

	for _, hint := range classificationHints {
		for _, substring := range hint.substrings {
			if strings.Contains(msg, substring) {
				return hint.classification
			}
		}
	}

	return ClassificationUnknown
}
