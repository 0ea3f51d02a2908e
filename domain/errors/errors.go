// Package errors provides the error taxonomy of the bridge.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/reglet-dev/vecbridge/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is implemented by error types that can describe themselves
// as a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
// Unknown errors are categorized as recoverable with type "recoverable".
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return entities.NewErrorDetail("recoverable", err.Error())
}

// IsDefect reports whether err is (or wraps) a recovered panic.
func IsDefect(err error) bool {
	var d *DefectError
	return stdErrors.As(err, &d)
}

// TypeMismatchError reports that a handle's element-type tag differs from
// the one an operation requires.
type TypeMismatchError struct {
	Expected entities.ElementType
	Actual   entities.ElementType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s vector, got %s", e.Expected, describeActual(e.Actual))
}

// ToErrorDetail implements DetailedError.
func (e *TypeMismatchError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("type_mismatch", e.Error()).
		WithCode(e.Expected.String() + "/" + e.Actual.String()).
		WithDetails(map[string]any{"expected": e.Expected.String(), "actual": e.Actual.String()})
}

func describeActual(t entities.ElementType) string {
	if t.IsVector() {
		return t.String() + " vector"
	}
	return t.String()
}

// RecoverableError is an anticipated, named failure raised by validation or
// transform logic.
type RecoverableError struct {
	Err error
	Op  string
}

func (e *RecoverableError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Err.Error()
}

func (e *RecoverableError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *RecoverableError) ToErrorDetail() *entities.ErrorDetail {
	detail := entities.NewErrorDetail("recoverable", e.Error()).WithCode(e.Op)
	var de DetailedError
	if stdErrors.As(e.Err, &de) {
		detail.Wrapped = de.ToErrorDetail()
	}
	return detail
}

// Recoverable wraps err with an operation label. Returns nil for a nil err.
func Recoverable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RecoverableError{Op: op, Err: err}
}

// DecodeError reports a text element that could not be converted to UTF-8.
// It always fails the whole view access.
type DecodeError struct {
	Err      error
	Index    int
	Encoding entities.CharEncoding
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode element %d (%s) to UTF-8: %v", e.Index, e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *DecodeError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("decode", e.Error()).WithCode(e.Encoding.String())
}

// LengthError reports a length that the host's length type cannot represent.
type LengthError struct {
	Err    error
	Length int64
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("length %d not representable by host: %v", e.Length, e.Err)
}

func (e *LengthError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *LengthError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("host", e.Error()).WithCode("length")
}

// DefectError is a recovered panic: an unanticipated fault, not a
// recoverable error.
type DefectError struct {
	Value    any
	Location string
	Stack    []byte
}

func (e *DefectError) Error() string {
	msg := "panic: " + PanicMessage(e.Value)
	if e.Location != "" {
		msg += " (at " + e.Location + ")"
	}
	return msg
}

// Unwrap exposes the panic value when it is itself an error
// (runtime.Error for out-of-range indexing, for example).
func (e *DefectError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ToErrorDetail implements DetailedError.
func (e *DefectError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Type:     "defect",
		Message:  e.Error(),
		Location: e.Location,
		Stack:    e.Stack,
	}
}

// PanicMessage renders a recovered panic value.
func PanicMessage(v any) string {
	switch p := v.(type) {
	case nil:
		return "panic with nil value"
	case error:
		return p.Error()
	case string:
		return p
	case fmt.Stringer:
		return p.String()
	default:
		return fmt.Sprintf("%v", p)
	}
}

// HostCallError is produced by the host-side trampoline when an entry point
// returns a failure handle.
type HostCallError struct {
	EntryPoint string
	Message    string
}

func (e *HostCallError) Error() string {
	if e.EntryPoint != "" {
		return fmt.Sprintf("%s: %s", e.EntryPoint, e.Message)
	}
	return e.Message
}

// ToErrorDetail implements DetailedError.
func (e *HostCallError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("host", e.Message).WithCode(e.EntryPoint)
}

// ProtectImbalanceError reports a call that returned with a different
// protect-stack depth than it started with.
type ProtectImbalanceError struct {
	EntryPoint string
	Before     int
	After      int
}

func (e *ProtectImbalanceError) Error() string {
	return fmt.Sprintf("%s: stack imbalance in protect stack, %d then %d", e.EntryPoint, e.Before, e.After)
}

// ToErrorDetail implements DetailedError.
func (e *ProtectImbalanceError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("host", e.Error()).WithCode("protect_imbalance")
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("config", e.Error()).WithCode(e.Field)
}

// SchemaError represents a schema generation error.
type SchemaError struct {
	Err  error
	Type string
}

func (e *SchemaError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("schema error for type %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("schema error: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *SchemaError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("internal", e.Error()).WithCode("schema")
}
