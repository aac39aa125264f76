package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid")

type Kind int

const (
	KindOther Kind = iota
	KindValidation
	KindFileSystem
	KindPostProperties
	KindConfigParse
	KindPrompt
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "Validation"
	case KindFileSystem:
		return "FileSystem"
	case KindPostProperties:
		return "PostProperties"
	case KindConfigParse:
		return "ConfigParse"
	case KindPrompt:
		return "Prompt"
	default:
		return "Other"
	}
}

// Error is the single tagged error every core operation returns.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	default:
		return e.Msg
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == ErrInvalid && e.Kind == KindValidation
}

func newf(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...any) error {
	return newf(KindValidation, nil, format, args...)
}

func FileSystem(err error, format string, args ...any) error {
	return newf(KindFileSystem, err, format, args...)
}

func PostProperties(format string, args ...any) error {
	return newf(KindPostProperties, nil, format, args...)
}

// WrapPostProperties keeps err in the chain, e.g. a textutil.ErrInvalidFormat.
func WrapPostProperties(err error, format string, args ...any) error {
	return newf(KindPostProperties, err, format, args...)
}

func ConfigParse(err error, format string, args ...any) error {
	return newf(KindConfigParse, err, format, args...)
}

func Prompt(err error) error {
	return &Error{Kind: KindPrompt, Err: err}
}

func Other(format string, args ...any) error {
	return newf(KindOther, nil, format, args...)
}

// KindOf reports the kind of err. A ValidationError counts as KindValidation.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var ve ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	return KindOther
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ExitCode maps err to the process exit status (sysexits EX_NOPERM / EX_CONFIG).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindFileSystem:
		return 77
	case KindValidation, KindConfigParse:
		return 78
	default:
		return 1
	}
}

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
	})
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}
