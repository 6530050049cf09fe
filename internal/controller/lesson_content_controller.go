package controller

import (
	"errors"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/dto"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/pkg/serverutils"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILessonContentController interface {
	RegisterRoutes(r fiber.Router)
	GenerateContent(ctx *fiber.Ctx) error
	ShowContent(ctx *fiber.Ctx) error
}

type lessonContentController struct {
	lessonContentService service.ILessonContentService
}

func NewLessonContentController(lessonContentService service.ILessonContentService) ILessonContentController {
	return &lessonContentController{
		lessonContentService: lessonContentService,
	}
}

func (c *lessonContentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/lesson/v1")
	h.Post(":id/generate-content", c.GenerateContent)
	h.Get(":id/content", c.ShowContent)
}

func (c *lessonContentController) GenerateContent(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid lesson id"))
	}

	var req dto.GenerateLessonContentRequest
	// the body is optional: no references and no instructions is a valid request
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
		}
	}
	req.LessonId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.lessonContentService.Generate(ctx.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	if !res.Success {
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponseWithData(502, res.Message, res))
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *lessonContentController) ShowContent(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid lesson id"))
	}

	res, err := c.lessonContentService.Show(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show lesson content", res))
}
