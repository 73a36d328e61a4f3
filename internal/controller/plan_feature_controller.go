package controller

import (
	"saas-manager-be/internal/dto"
	"saas-manager-be/internal/pkg/serverutils"
	"saas-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPlanFeatureController interface {
	RegisterRoutes(r fiber.Router)
	GetPlanFeatures(ctx *fiber.Ctx) error
	AddFeatureToPlan(ctx *fiber.Ctx) error
	ConfigurePlanFeatures(ctx *fiber.Ctx) error
	UpdateFeatureConfiguration(ctx *fiber.Ctx) error
	RemoveFeatureFromPlan(ctx *fiber.Ctx) error
	UpdateFeatureOrder(ctx *fiber.Ctx) error
}

type planFeatureController struct {
	service service.IPlanFeatureService
}

func NewPlanFeatureController(service service.IPlanFeatureService) IPlanFeatureController {
	return &planFeatureController{service: service}
}

func (c *planFeatureController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/plans/:planId/features")

	h.Get("/", c.GetPlanFeatures)
	h.Post("/", c.AddFeatureToPlan)
	h.Post("/bulk", c.ConfigurePlanFeatures)
	// must be registered before /:featureId
	h.Patch("/order", c.UpdateFeatureOrder)
	h.Patch("/:featureId", c.UpdateFeatureConfiguration)
	h.Delete("/:featureId", c.RemoveFeatureFromPlan)
}

// requireApplicationId reads the mandatory applicationId query parameter
func requireApplicationId(ctx *fiber.Ctx) (uuid.UUID, error) {
	applicationId, err := serverutils.ParseOptionalUUIDQuery(ctx, "applicationId")
	if err != nil {
		return uuid.Nil, err
	}
	if applicationId == nil {
		return uuid.Nil, serverutils.BadRequest("applicationId is required")
	}
	return *applicationId, nil
}

// bodyApplicationId lets the query parameter stand in for a missing body field
func bodyApplicationId(ctx *fiber.Ctx, current *uuid.UUID) error {
	if *current != uuid.Nil {
		return nil
	}
	applicationId, err := serverutils.ParseOptionalUUIDQuery(ctx, "applicationId")
	if err != nil {
		return err
	}
	if applicationId != nil {
		*current = *applicationId
	}
	return nil
}

func (c *planFeatureController) GetPlanFeatures(ctx *fiber.Ctx) error {
	planId, err := serverutils.ParseUUIDParam(ctx, "planId", "plan")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	applicationId, err := requireApplicationId(ctx)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	features, err := c.service.GetPlanFeatures(ctx.UserContext(), planId, applicationId)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan features", features))
}

func (c *planFeatureController) AddFeatureToPlan(ctx *fiber.Ctx) error {
	planId, err := serverutils.ParseUUIDParam(ctx, "planId", "plan")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	var req dto.AddPlanFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Fail(ctx, serverutils.BadRequest("Invalid request body"))
	}
	if err := bodyApplicationId(ctx, &req.ApplicationId); err != nil {
		return serverutils.Fail(ctx, err)
	}
	if err := serverutils.Validate(&req); err != nil {
		return serverutils.Fail(ctx, err)
	}

	feature, err := c.service.AddFeatureToPlan(ctx.UserContext(), planId, req)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Feature added to plan", feature))
}

func (c *planFeatureController) ConfigurePlanFeatures(ctx *fiber.Ctx) error {
	planId, err := serverutils.ParseUUIDParam(ctx, "planId", "plan")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	var req dto.ConfigurePlanFeaturesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Fail(ctx, serverutils.BadRequest("Invalid request body"))
	}
	if err := bodyApplicationId(ctx, &req.ApplicationId); err != nil {
		return serverutils.Fail(ctx, err)
	}
	if err := serverutils.Validate(&req); err != nil {
		return serverutils.Fail(ctx, err)
	}

	features, err := c.service.ConfigurePlanFeatures(ctx.UserContext(), planId, req)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan features configured", features))
}

func (c *planFeatureController) UpdateFeatureConfiguration(ctx *fiber.Ctx) error {
	planId, err := serverutils.ParseUUIDParam(ctx, "planId", "plan")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	featureId, err := serverutils.ParseUUIDParam(ctx, "featureId", "feature")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	applicationId, err := requireApplicationId(ctx)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	var req dto.UpdatePlanFeatureRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return serverutils.Fail(ctx, err)
	}

	feature, err := c.service.UpdateFeatureConfiguration(ctx.UserContext(), planId, featureId, applicationId, req)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan feature updated", feature))
}

func (c *planFeatureController) RemoveFeatureFromPlan(ctx *fiber.Ctx) error {
	planId, err := serverutils.ParseUUIDParam(ctx, "planId", "plan")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	featureId, err := serverutils.ParseUUIDParam(ctx, "featureId", "feature")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	applicationId, err := requireApplicationId(ctx)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	if err := c.service.RemoveFeatureFromPlan(ctx.UserContext(), planId, featureId, applicationId); err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Feature removed from plan", nil))
}

func (c *planFeatureController) UpdateFeatureOrder(ctx *fiber.Ctx) error {
	planId, err := serverutils.ParseUUIDParam(ctx, "planId", "plan")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	applicationId, err := requireApplicationId(ctx)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	var req dto.UpdateFeatureOrderRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return serverutils.Fail(ctx, err)
	}

	features, err := c.service.UpdateFeatureOrder(ctx.UserContext(), planId, applicationId, req)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan feature order updated", features))
}
