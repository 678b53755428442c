package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/matinfathi/oo-backend/internal/middleware"
)

// ==================== 错误类型 ====================

// 错误类别，传输层用 errors.Is 映射状态码
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrUnauthenticated  = middleware.ErrUnauthenticated
)

// Error 带类别与对外消息的业务错误
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// 常用错误
var (
	ErrForbidden          = &Error{Kind: ErrPermissionDenied, Msg: "Not enough permission."}
	ErrInvalidCredentials = &Error{Kind: ErrUnauthenticated, Msg: "Incorrect username or password."}
	ErrInvalidToken       = &Error{Kind: ErrUnauthenticated, Msg: "Could not validate credentials."}
	ErrUsernameExists     = &Error{Kind: ErrConflict, Msg: "Username already registered."}
	ErrEmailExists        = &Error{Kind: ErrConflict, Msg: "Email already registered."}
	ErrEmptyUserLookup    = &Error{Kind: ErrValidation, Msg: "Provide at least one of id, username or email."}
)

func notFound(entity string) error {
	return &Error{Kind: ErrNotFound, Msg: entity + " not found."}
}

func validationError(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func conflictError(format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Msg: fmt.Sprintf(format, args...)}
}

// translate 把存储层约束错误转换为业务错误，其余原样返回
func translate(err error) error {
	if err == nil {
		return nil
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return conflictError("Record already exists.")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return conflictError("Operation violates a reference between records.")
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return validationError("Value violates a check constraint.")
	}
	return err
}
