package ez

import (
	"errors"
	"net/http"

	"brewbuy/internal/domain"
)

// 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// FromError 业务错误 → HTTP 语义；未识别的错误一律 500
func FromError(err error) *AErr {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		// 兼容旧客户端：凭据错误返回 400 而非 401
		return &AErr{Code: http.StatusBadRequest, Msg: "Invalid credentials", Err: err}
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrBadRequest),
		errors.Is(err, domain.ErrProtectedAccount),
		errors.Is(err, domain.ErrInvalidTransition):
		return &AErr{Code: http.StatusBadRequest, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrNotFoundOrForbidden):
		return &AErr{Code: http.StatusForbidden, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrNotFound):
		return &AErr{Code: http.StatusNotFound, Msg: err.Error(), Err: err}
	}
	return &AErr{Code: http.StatusInternalServerError, Msg: "internal error", Err: err}
}
