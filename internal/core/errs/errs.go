// Package errs 业务错误分类；HTTP 状态码映射只在传输层边界做一次。
package errs

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAlreadyExists
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindInvalidCredentials
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAlreadyExists:
		return "already_exists"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindInvalidCredentials:
		return "invalid_credentials"
	default:
		return "internal"
	}
}

// Status 分类 → HTTP 状态码
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAlreadyExists:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// E 统一错误对象
type E struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *E) Unwrap() error { return e.Err }

func Validation(msg string) error         { return &E{Kind: KindValidation, Msg: msg} }
func AlreadyExists(msg string) error      { return &E{Kind: KindAlreadyExists, Msg: msg} }
func NotFound(msg string) error           { return &E{Kind: KindNotFound, Msg: msg} }
func Unauthorized(msg string) error       { return &E{Kind: KindUnauthorized, Msg: msg} }
func Forbidden(msg string) error          { return &E{Kind: KindForbidden, Msg: msg} }
func InvalidCredentials(msg string) error { return &E{Kind: KindInvalidCredentials, Msg: msg} }
func Internal(msg string, err error) error {
	return &E{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf 非 *E 一律视为 Internal
func KindOf(err error) Kind {
	var e *E
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, k Kind) bool { return err != nil && KindOf(err) == k }

// Message 取最内层 *E 的文案，忽略外层 Wrap 的前缀
func Message(err error) string {
	var e *E
	if errors.As(err, &e) {
		return e.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
