package serverutils

import "github.com/gofiber/fiber/v2"

// BaseResponse is the envelope every endpoint answers with.
type BaseResponse[T any] struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       T      `json:"data"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		StatusCode: fiber.StatusOK,
		Message:    message,
		Data:       data,
	}
}

func CreatedResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		StatusCode: fiber.StatusCreated,
		Message:    message,
		Data:       data,
	}
}

func ErrorResponse(statusCode int, message string) BaseResponse[any] {
	return BaseResponse[any]{
		StatusCode: statusCode,
		Message:    message,
	}
}
