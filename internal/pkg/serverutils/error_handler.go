package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors escaping the handler chain (unknown routes,
// body limit, recovered panics) into the standard envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return Fail(ctx, err)
		}
		return nil
	}
}

// ErrorHandler is the app-level fallback for errors raised outside the chain.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	return Fail(ctx, err)
}
