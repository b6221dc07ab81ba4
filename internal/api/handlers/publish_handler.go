package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"github.com/campfireagency/socialpress/internal/queue"
	"github.com/campfireagency/socialpress/internal/repository"
)

type PublishHandler struct {
	cr          repository.ContentRepository
	AsynqClient *asynq.Client
}

func NewPublishHandler(cr repository.ContentRepository, asynqClient *asynq.Client) *PublishHandler {
	return &PublishHandler{cr: cr, AsynqClient: asynqClient}
}

type publishRequest struct {
	ContentID int64 `json:"content_id"`
}

// PublishNow enqueues an immediate publish attempt for one content item. The
// heavy lifting, including the idempotency guard, happens in the worker.
func (h *PublishHandler) PublishNow(c *fiber.Ctx) error {
	var req publishRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}
	if req.ContentID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "content_id is required",
		})
	}

	item, err := h.cr.GetByID(c.Context(), req.ContentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if item == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "content item not found",
		})
	}
	if item.ExternalPostID != "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "content item is already published",
		})
	}

	err = queue.EnqueueContent(h.AsynqClient, queue.PublishContentPayload{ContentID: req.ContentID}, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "error scheduling publish",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "publish scheduled",
	})
}

// GetContent exposes the publish-related state of one item, mainly so the
// admin console can show the last error after a failed attempt.
func (h *PublishHandler) GetContent(c *fiber.Ctx) error {
	contentID := int64(c.QueryInt("id", 0))
	if contentID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id is required",
		})
	}

	item, err := h.cr.GetByID(c.Context(), contentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if item == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "content item not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(item)
}
