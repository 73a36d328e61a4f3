package controller

import (
	"saas-manager-be/internal/pkg/serverutils"
	"saas-manager-be/pkg/admin/mapper"
	"saas-manager-be/pkg/admin/valuefmt"

	"github.com/gofiber/fiber/v2"
)

// ILookupController serves the static tables the admin UI builds its forms from
type ILookupController interface {
	RegisterRoutes(r fiber.Router)
	GetFieldTypes(ctx *fiber.Ctx) error
	GetUnits(ctx *fiber.Ctx) error
	GetUnitCategories(ctx *fiber.Ctx) error
}

type lookupController struct{}

func NewLookupController() ILookupController {
	return &lookupController{}
}

func (c *lookupController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/features")

	h.Get("/types", c.GetFieldTypes)
	h.Get("/units", c.GetUnits)
	h.Get("/units/categories", c.GetUnitCategories)
}

func (c *lookupController) GetFieldTypes(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Field types", mapper.FieldTypesToResponse(valuefmt.FieldTypes())))
}

func (c *lookupController) GetUnits(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Units", mapper.UnitsToResponse(valuefmt.Units())))
}

func (c *lookupController) GetUnitCategories(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Unit categories", mapper.UnitCategoriesToResponse(valuefmt.UnitCategories())))
}
