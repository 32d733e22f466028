package communication

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrValidation       = errors.New("communication entry validation failed")
	ErrUnknownValue     = errors.New("value is not part of the allowed set")
	ErrNegativeAmount   = errors.New("monetary amount must not be negative")
	ErrAmountOutOfRange = errors.New("monetary amount is out of range")
)

// ValidationError lists the offending fields of a rejected entry, keyed by their
// JSON name. It unwraps to ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	b.WriteString(": ")
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(" ")
		b.WriteString(e.Fields[name])
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Add records a problem with field, keeping the first one reported.
func (e *ValidationError) Add(field, problem string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = problem
	}
}

// OrNil returns e as an error only when it holds at least one field.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
