package domain

import "errors"

// 业务错误（由 transport 层统一映射为 HTTP 状态）
var (
	ErrValidation          = errors.New("validation failed")
	ErrConflict            = errors.New("already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNotFoundOrForbidden = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrBadRequest          = errors.New("bad request")
	ErrProtectedAccount    = errors.New("protected account")
	ErrInvalidTransition   = errors.New("invalid status transition")
)
