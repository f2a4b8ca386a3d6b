package usage

import (
	"fmt"
	"strings"
)

// UnknownArgumentType is returned when a named resolver is not registered.
func UnknownArgumentType(name string) *Error {
	return &Error{
		Kind:      ErrUnknownArgumentType,
		Message:   fmt.Sprintf("argument type '%s' is not registered", name),
		Parameter: name,
	}
}

// MissingArgument is returned when the stream is exhausted before a required
// extraction.
func MissingArgument(parameter string) *Error {
	return &Error{
		Kind:      ErrMissingArgument,
		Message:   fmt.Sprintf("missing required argument '%s'", parameter),
		Parameter: parameter,
	}
}

// ParseFailed is returned when a resolver rejects a token. The identifier is
// resolver-supplied; an empty identifier falls back to the generic one.
func ParseFailed(identifier, message, parameter, raw string) *Error {
	return &Error{
		Kind:       ErrParseFailed,
		Identifier: identifier,
		Message:    message,
		Parameter:  parameter,
		Raw:        raw,
	}
}

// RepeatEmpty is returned when a repeat extraction collects zero values
// because its very first resolution failed.
func RepeatEmpty(parameter, raw string, cause *Error) *Error {
	e := &Error{
		Kind:      ErrRepeatEmpty,
		Message:   fmt.Sprintf("could not resolve any value for '%s'", parameter),
		Parameter: parameter,
		Raw:       raw,
	}
	if cause != nil {
		e.Message = cause.Message
		e.Context = map[string]any{"cause": cause.ID()}
	}
	return e
}

// UnknownCommand is returned when no command matches the invocation.
func UnknownCommand(name string, suggestions ...string) *Error {
	msg := fmt.Sprintf("'%s' is not a known command", name)
	if len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(suggestions, ", "))
	}
	return &Error{
		Kind:    ErrUnknownCommand,
		Message: msg,
		Raw:     name,
	}
}

// PreconditionDenied wraps a precondition denial so it can travel as an
// error. The identifier is the precondition's own.
func PreconditionDenied(identifier, message string, context map[string]any) *Error {
	return &Error{
		Kind:       ErrPreconditionDenied,
		Identifier: identifier,
		Message:    message,
		Context:    context,
	}
}
