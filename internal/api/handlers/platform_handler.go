package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/campfireagency/socialpress/internal/service"
)

type PlatformHandler struct {
	s service.PlatformService
}

func NewPlatformHandler(s service.PlatformService) *PlatformHandler {
	return &PlatformHandler{s: s}
}

type connectAccountRequest struct {
	ClientID    int64  `json:"client_id"`
	Platform    string `json:"platform"`
	AccessToken string `json:"access_token"`
}

// ConnectAccount verifies a raw page token and stores the encrypted binding.
func (h *PlatformHandler) ConnectAccount(c *fiber.Ctx) error {
	var req connectAccountRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}
	if req.ClientID == 0 || req.Platform == "" || req.AccessToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "client_id, platform and access_token are required",
		})
	}

	accountID, err := h.s.ConnectAccount(c.Context(), req.ClientID, req.Platform, req.AccessToken)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"account_id": accountID,
	})
}

func (h *PlatformHandler) ListAccounts(c *fiber.Ctx) error {
	clientID := int64(c.QueryInt("client_id", 0))

	accounts, err := h.s.List(c.Context(), clientID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to list social accounts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(accounts)
}

type removeAccountRequest struct {
	ClientID  int64 `json:"client_id"`
	AccountID int64 `json:"account_id"`
}

func (h *PlatformHandler) DeactivateAccount(c *fiber.Ctx) error {
	var req removeAccountRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}

	if err := h.s.Deactivate(c.Context(), req.ClientID, req.AccountID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "account deactivated",
	})
}
