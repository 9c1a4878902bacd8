package service

import (
	"errors"

	"github.com/d60-Lab/gin-blog/internal/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrForbidden          = errors.New("not the author")
	ErrFollowSelf         = errors.New("cannot follow self")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidImage       = errors.New("invalid image")
)

// FieldError 表单字段校验失败，由 handler 渲染回表单
type FieldError struct {
	Field   string
	Message string
	// Err 可选的哨兵错误，供 errors.Is 判断
	Err error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func (e *FieldError) Unwrap() error { return e.Err }

func fieldError(field, msg string) error { return &FieldError{Field: field, Message: msg} }

// AsFieldError 提取字段错误
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
