package controller

import (
	"pdf-knowledge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILibraryController interface {
	RegisterRoutes(r fiber.Router)
	GetDocuments(ctx *fiber.Ctx) error
	GetTopics(ctx *fiber.Ctx) error
	GetTopicFacts(ctx *fiber.Ctx) error
	GetStats(ctx *fiber.Ctx) error
}

type libraryController struct {
	service service.ILibraryService
}

func NewLibraryController(service service.ILibraryService) ILibraryController {
	return &libraryController{service: service}
}

func (c *libraryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/library/v1")
	h.Get("/documents", c.GetDocuments)
	h.Get("/topics", c.GetTopics)
	h.Get("/topics/:topic", c.GetTopicFacts)
	h.Get("/stats", c.GetStats)
}

func (c *libraryController) GetDocuments(ctx *fiber.Ctx) error {
	res, err := c.service.Documents(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load documents: " + err.Error()})
	}
	return ctx.JSON(res)
}

func (c *libraryController) GetTopics(ctx *fiber.Ctx) error {
	res, err := c.service.Topics(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load topics: " + err.Error()})
	}
	return ctx.JSON(res)
}

func (c *libraryController) GetTopicFacts(ctx *fiber.Ctx) error {
	topic := ctx.Params("topic")
	res, err := c.service.TopicFacts(ctx.Context(), topic)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load topic facts: " + err.Error()})
	}
	return ctx.JSON(res)
}

func (c *libraryController) GetStats(ctx *fiber.Ctx) error {
	res, err := c.service.Stats(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load stats: " + err.Error()})
	}
	return ctx.JSON(res)
}
