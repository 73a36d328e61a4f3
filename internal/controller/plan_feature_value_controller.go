package controller

import (
	"saas-manager-be/internal/dto"
	"saas-manager-be/internal/pkg/serverutils"
	"saas-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPlanFeatureValueController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	FindAll(ctx *fiber.Ctx) error
	FindOne(ctx *fiber.Ctx) error
	FindByPlanId(ctx *fiber.Ctx) error
	FindByPlanAndFeature(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
	RemoveByPlan(ctx *fiber.Ctx) error
	RemoveByFeature(ctx *fiber.Ctx) error
	BulkCreateOrUpdate(ctx *fiber.Ctx) error
	BulkUpdateForPlan(ctx *fiber.Ctx) error
}

type planFeatureValueController struct {
	service service.IPlanFeatureValueService
}

func NewPlanFeatureValueController(service service.IPlanFeatureValueService) IPlanFeatureValueController {
	return &planFeatureValueController{service: service}
}

func (c *planFeatureValueController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/plan-feature-values")

	h.Post("/", c.Create)
	h.Get("/", c.FindAll)
	h.Post("/bulk", c.BulkUpdateForPlan)

	h.Get("/plan/:planId", c.FindByPlanId)
	h.Put("/plan/:planId", c.BulkCreateOrUpdate)
	h.Delete("/plan/:planId", c.RemoveByPlan)
	h.Get("/plan/:planId/feature/:featureId", c.FindByPlanAndFeature)
	h.Delete("/feature/:featureId", c.RemoveByFeature)

	h.Get("/:id", c.FindOne)
	h.Patch("/:id", c.Update)
	h.Delete("/:id", c.Remove)
}

func (c *planFeatureValueController) Create(ctx *fiber.Ctx) error {
	var req dto.CreatePlanFeatureValueRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return serverutils.Fail(ctx, err)
	}

	value, err := c.service.Create(ctx.UserContext(), req)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Plan feature value created", value))
}

func (c *planFeatureValueController) FindAll(ctx *fiber.Ctx) error {
	page, err := pageQuery(ctx)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	values, err := c.service.FindAll(ctx.UserContext(), page)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan feature values", values))
}

func (c *planFeatureValueController) FindOne(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "plan feature value")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	value, err := c.service.FindOne(ctx.UserContext(), id)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan feature value", value))
}

func (c *planFeatureValueController) FindByPlanId(ctx *fiber.Ctx) error {
	planId, err := serverutils.ParseUUIDParam(ctx, "planId", "plan")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	values, err := c.service.FindByPlanId(ctx.UserContext(), planId)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan feature values", values))
}

func (c *planFeatureValueController) FindByPlanAndFeature(ctx *fiber.Ctx) error {
	planId, err := serverutils.ParseUUIDParam(ctx, "planId", "plan")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	featureId, err := serverutils.ParseUUIDParam(ctx, "featureId", "feature")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	value, err := c.service.FindByPlanAndFeature(ctx.UserContext(), planId, featureId)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan feature value", value))
}

func (c *planFeatureValueController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "plan feature value")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	var req dto.UpdatePlanFeatureValueRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return serverutils.Fail(ctx, err)
	}

	value, err := c.service.Update(ctx.UserContext(), id, req)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan feature value updated", value))
}

func (c *planFeatureValueController) Remove(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "plan feature value")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	value, err := c.service.Remove(ctx.UserContext(), id)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan feature value deactivated", value))
}

func (c *planFeatureValueController) RemoveByPlan(ctx *fiber.Ctx) error {
	planId, err := serverutils.ParseUUIDParam(ctx, "planId", "plan")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	res, err := c.service.RemoveByPlan(ctx.UserContext(), planId)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan feature values deleted", res))
}

func (c *planFeatureValueController) RemoveByFeature(ctx *fiber.Ctx) error {
	featureId, err := serverutils.ParseUUIDParam(ctx, "featureId", "feature")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	res, err := c.service.RemoveByFeature(ctx.UserContext(), featureId)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan feature values deleted", res))
}

func (c *planFeatureValueController) BulkCreateOrUpdate(ctx *fiber.Ctx) error {
	planId, err := serverutils.ParseUUIDParam(ctx, "planId", "plan")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	var req dto.BulkUpsertPlanFeatureValuesRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return serverutils.Fail(ctx, err)
	}

	res := c.service.BulkCreateOrUpdate(ctx.UserContext(), planId, req)
	return ctx.JSON(serverutils.SuccessResponse("Plan feature values saved", res))
}

func (c *planFeatureValueController) BulkUpdateForPlan(ctx *fiber.Ctx) error {
	var req dto.BulkReplacePlanFeatureValuesRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return serverutils.Fail(ctx, err)
	}

	values, err := c.service.BulkUpdateForPlan(ctx.UserContext(), req)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan feature values replaced", values))
}
