package httperr

import "errors"

type Kind string

const (
	KindValidation  Kind = "validation"
	KindConflict    Kind = "conflict"
	KindAuth        Kind = "auth"
	KindNotFound    Kind = "not_found"
	KindProtected   Kind = "protected"
	KindPersistence Kind = "persistence"
	KindUnavailable Kind = "unavailable"
)

// BusinessError is an expected failure that maps to a user-facing response.
// Field is set for validation and conflict errors tied to one form input.
type BusinessError struct {
	Kind    Kind
	Code    string
	Field   string
	Message string
	Err     error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func Validation(field, code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Field: field, Message: message}
}

func Conflict(field, code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Field: field, Message: message}
}

func Auth(code string) error {
	return BusinessError{Kind: KindAuth, Code: code, Message: "Faça login para continuar."}
}

func NotFoundErr(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func Protected(code, message string) error {
	return BusinessError{Kind: KindProtected, Code: code, Message: message}
}

// Persistence wraps a store failure. The wrapped error is logged, never shown.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	var be BusinessError
	if errors.As(err, &be) {
		return err
	}
	return BusinessError{
		Kind:    KindPersistence,
		Code:    "persistence_error",
		Message: "Não foi possível concluir a operação. Tente novamente.",
		Err:     err,
	}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}
