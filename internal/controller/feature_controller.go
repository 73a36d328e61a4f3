package controller

import (
	"strconv"

	"saas-manager-be/internal/dto"
	"saas-manager-be/internal/pkg/serverutils"
	"saas-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const maxPageLimit = 500

type IFeatureController interface {
	RegisterRoutes(r fiber.Router)
	ListFeatures(ctx *fiber.Ctx) error
	GetFeature(ctx *fiber.Ctx) error
	CreateFeature(ctx *fiber.Ctx) error
	UpdateFeature(ctx *fiber.Ctx) error
	DeleteFeature(ctx *fiber.Ctx) error
	ActivateFeature(ctx *fiber.Ctx) error
	DeactivateFeature(ctx *fiber.Ctx) error

	// Custom fields
	AddCustomField(ctx *fiber.Ctx) error
	UpdateCustomField(ctx *fiber.Ctx) error
	DeleteCustomField(ctx *fiber.Ctx) error
}

type featureController struct {
	service service.IFeatureService
}

func NewFeatureController(service service.IFeatureService) IFeatureController {
	return &featureController{service: service}
}

func (c *featureController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/application-features")

	h.Get("/", c.ListFeatures)
	h.Post("/", c.CreateFeature)
	h.Get("/:id", c.GetFeature)
	h.Patch("/:id", c.UpdateFeature)
	h.Delete("/:id", c.DeleteFeature)
	h.Patch("/:id/activate", c.ActivateFeature)
	h.Patch("/:id/deactivate", c.DeactivateFeature)

	h.Post("/:id/custom-fields", c.AddCustomField)
	h.Patch("/:id/custom-fields/:fieldId", c.UpdateCustomField)
	h.Delete("/:id/custom-fields/:fieldId", c.DeleteCustomField)
}

func (c *featureController) ListFeatures(ctx *fiber.Ctx) error {
	applicationId, err := serverutils.ParseOptionalUUIDQuery(ctx, "applicationId")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	isGlobal, err := optionalBoolQuery(ctx, "isGlobal")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	isActive, err := optionalBoolQuery(ctx, "isActive")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	page, err := pageQuery(ctx)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	features, err := c.service.ListFeatures(ctx.UserContext(), dto.FeatureFilter{
		ApplicationId: applicationId,
		IsGlobal:      isGlobal,
		Category:      ctx.Query("category"),
		IsActive:      isActive,
		PageQuery:     page,
	})
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature catalog", features))
}

func (c *featureController) GetFeature(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "feature")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	feature, err := c.service.GetFeature(ctx.UserContext(), id)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature detail", feature))
}

func (c *featureController) CreateFeature(ctx *fiber.Ctx) error {
	var req dto.CreateFeatureRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return serverutils.Fail(ctx, err)
	}

	feature, err := c.service.CreateFeature(ctx.UserContext(), req)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Feature created", feature))
}

func (c *featureController) UpdateFeature(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "feature")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	var req dto.UpdateFeatureRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return serverutils.Fail(ctx, err)
	}

	feature, err := c.service.UpdateFeature(ctx.UserContext(), id, req)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature updated", feature))
}

func (c *featureController) DeleteFeature(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "feature")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	if err := c.service.DeleteFeature(ctx.UserContext(), id); err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Feature deleted", nil))
}

func (c *featureController) ActivateFeature(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "feature")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	feature, err := c.service.ActivateFeature(ctx.UserContext(), id)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature activated", feature))
}

func (c *featureController) DeactivateFeature(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id", "feature")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	feature, err := c.service.DeactivateFeature(ctx.UserContext(), id)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature deactivated", feature))
}

func (c *featureController) AddCustomField(ctx *fiber.Ctx) error {
	featureId, err := serverutils.ParseUUIDParam(ctx, "id", "feature")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	var req dto.CreateCustomFieldRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return serverutils.Fail(ctx, err)
	}

	field, err := c.service.AddCustomField(ctx.UserContext(), featureId, req)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Custom field created", field))
}

func (c *featureController) UpdateCustomField(ctx *fiber.Ctx) error {
	featureId, err := serverutils.ParseUUIDParam(ctx, "id", "feature")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	fieldId, err := serverutils.ParseUUIDParam(ctx, "fieldId", "custom field")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	var req dto.UpdateCustomFieldRequest
	if err := serverutils.BindAndValidate(ctx, &req); err != nil {
		return serverutils.Fail(ctx, err)
	}

	field, err := c.service.UpdateCustomField(ctx.UserContext(), featureId, fieldId, req)
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Custom field updated", field))
}

func (c *featureController) DeleteCustomField(ctx *fiber.Ctx) error {
	featureId, err := serverutils.ParseUUIDParam(ctx, "id", "feature")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}
	fieldId, err := serverutils.ParseUUIDParam(ctx, "fieldId", "custom field")
	if err != nil {
		return serverutils.Fail(ctx, err)
	}

	if err := c.service.DeleteCustomField(ctx.UserContext(), featureId, fieldId); err != nil {
		return serverutils.Fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Custom field deleted", nil))
}

// optionalBoolQuery distinguishes an absent filter from an explicit false
func optionalBoolQuery(ctx *fiber.Ctx, name string) (*bool, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, serverutils.BadRequest("Invalid %s", name)
	}
	return &v, nil
}

// pageQuery reads optional limit/offset. offset without limit is ignored.
func pageQuery(ctx *fiber.Ctx) (dto.PageQuery, error) {
	var page dto.PageQuery
	for name, dest := range map[string]*int{"limit": &page.Limit, "offset": &page.Offset} {
		raw := ctx.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return dto.PageQuery{}, serverutils.BadRequest("Invalid %s", name)
		}
		*dest = v
	}
	if page.Limit > maxPageLimit {
		return dto.PageQuery{}, serverutils.BadRequest("limit must not exceed %d", maxPageLimit)
	}
	return page, nil
}
