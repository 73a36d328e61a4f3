package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs the `validate` struct tags of a request DTO.
func Validate(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, describeFieldError(fe))
			}
			return BadRequest("validation failed: %s", strings.Join(msgs, "; "))
		}
		return WrapBadRequest(err, "validation failed")
	}
	return nil
}

// BindAndValidate parses the JSON body into req and validates it.
func BindAndValidate(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return BadRequest("Invalid request body")
	}
	return Validate(req)
}

// ParseUUIDParam reads a route parameter as a UUID.
func ParseUUIDParam(ctx *fiber.Ctx, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, BadRequest("Invalid %s ID", label)
	}
	return id, nil
}

// ParseOptionalUUIDQuery reads a query parameter as a UUID, nil when absent.
func ParseOptionalUUIDQuery(ctx *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, BadRequest("Invalid %s", name)
	}
	return &id, nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Namespace(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag())
	}
}
