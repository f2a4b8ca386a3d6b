// Package usage defines the user-facing error values produced by the
// argument pipeline. Every error carries a stable identifier so callers can
// branch on the failure kind, and a message suitable for direct display.
package usage

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrUnknownArgumentType
	ErrMissingArgument
	ErrParseFailed
	ErrRepeatEmpty
	ErrUnknownCommand
	ErrPreconditionDenied
)

// Stable identifiers per kind. ErrParseFailed is special: resolvers supply
// their own identifier and this table only provides the fallback.
var identifiers = map[ErrorKind]string{
	ErrUnknown:             "unknownError",
	ErrUnknownArgumentType: "argumentUnknownType",
	ErrMissingArgument:     "argumentMissing",
	ErrParseFailed:         "argumentParseFailed",
	ErrRepeatEmpty:         "argumentRepeatEmpty",
	ErrUnknownCommand:      "unknownCommand",
	ErrPreconditionDenied:  "preconditionDenied",
}

// Configuration errors are mistakes by the command author, not the end user.
// Callers use this split to choose different messaging.
var configuration = map[ErrorKind]bool{
	ErrUnknown:             false,
	ErrUnknownArgumentType: true,
	ErrMissingArgument:     false,
	ErrParseFailed:         false,
	ErrRepeatEmpty:         false,
	ErrUnknownCommand:      false,
	ErrPreconditionDenied:  false,
}

// Error represents a user-facing error with semantic type information.
type Error struct {
	Kind    ErrorKind
	Message string

	// Identifier overrides the kind's identifier when set; resolvers use it
	// to report their own failure identifiers.
	Identifier string

	// Parameter names the logical argument position or type that produced
	// the error; Raw carries the offending token text, when there was one.
	Parameter string
	Raw       string

	// Context carries optional structured data about the failure.
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// ID returns the stable identifier for this error.
func (e *Error) ID() string {
	if e.Identifier != "" {
		return e.Identifier
	}
	if id, ok := identifiers[e.Kind]; ok {
		return id
	}
	return identifiers[ErrUnknown]
}

// IsConfiguration reports whether the error is a command-author mistake
// rather than an end-user input mistake.
func (e *Error) IsConfiguration() bool {
	return configuration[e.Kind]
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
