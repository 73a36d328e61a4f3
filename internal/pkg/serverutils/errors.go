package serverutils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Error kinds. Match with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
)

// AppError carries a client-facing message together with its kind.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func NotFound(format string, args ...interface{}) error {
	return &AppError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) error {
	return &AppError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...interface{}) error {
	return &AppError{Kind: ErrBadRequest, Message: fmt.Sprintf(format, args...)}
}

// WrapBadRequest keeps the cause reachable through errors.Is/As.
func WrapBadRequest(err error, format string, args ...interface{}) error {
	return &AppError{Kind: ErrBadRequest, Message: fmt.Sprintf(format, args...) + ": " + err.Error(), Err: err}
}

// StatusCode maps an error returned by the service layer to an HTTP status.
func StatusCode(err error) int {
	var fiberErr *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		return fiber.StatusConflict
	case errors.Is(err, ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// Fail writes the error envelope for err.
func Fail(ctx *fiber.Ctx, err error) error {
	code := StatusCode(err)
	message := err.Error()
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		message = "resource already exists"
	}
	return ctx.Status(code).JSON(ErrorResponse(code, message))
}
