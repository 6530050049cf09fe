package controller

import (
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/dto"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/pkg/serverutils"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReferenceController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type referenceController struct {
	referenceService service.IReferenceService
}

func NewReferenceController(referenceService service.IReferenceService) IReferenceController {
	return &referenceController{
		referenceService: referenceService,
	}
}

func (c *referenceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reference/v1")
	h.Get("search", c.Search)
}

func (c *referenceController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchReferencesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.referenceService.Search(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search references", res))
}
