package server

import (
	"strconv"
	"xpresabot/app/client/envia"
	"xpresabot/app/service/conversation"
	"xpresabot/app/service/knowledge"
	"xpresabot/app/service/session"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleWebhook(c *fiber.Ctx) error {
	var req webhookRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid webhook body")
	}

	history := make([]session.Turn, 0, len(req.LastMessages))
	for _, turn := range req.LastMessages {
		history = append(history, session.Turn{Role: turn.Role, Content: turn.Content})
	}

	outcome, err := s.conversationSvc.ProcessMessage(c.UserContext(), conversation.Inbound{
		SubscriberID: req.UserID,
		Text:         req.Content,
		LastMessages: history,
	})
	if err != nil {
		return err
	}

	return c.JSON(webhookResponse{
		Action:  outcome.Action,
		Message: outcome.Message,
		Reason:  outcome.Reason,
	})
}

func (s *Server) handleWebhookStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "active",
		"endpoint": "manychat_webhook",
	})
}

func (s *Server) handleGetSettings(c *fiber.Ctx) error {
	return c.JSON(settingsPayload{BotActive: s.settingsSvc.BotActive()})
}

func (s *Server) handleSetSettings(c *fiber.Ctx) error {
	var req settingsPayload
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid settings body")
	}

	if err := s.settingsSvc.SetBotActive(req.BotActive); err != nil {
		return err
	}

	return c.JSON(req)
}

func (s *Server) handleListKnowledge(c *fiber.Ctx) error {
	entries, err := s.knowledgeSvc.AllEntries()
	if err != nil {
		return err
	}

	return c.JSON(entries)
}

func (s *Server) handleUpsertKnowledge(c *fiber.Ctx) error {
	var entry knowledge.Entry
	if err := c.BodyParser(&entry); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid knowledge entry")
	}

	if err := s.knowledgeSvc.UpsertEntry(entry); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(entry)
}

func (s *Server) handleDeleteKnowledge(c *fiber.Ctx) error {
	if err := s.knowledgeSvc.DeleteEntry(c.Params("key")); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// handleImportKnowledge pulls the page's ManyChat bot fields and lands
// every non-empty one as a general knowledge entry.
func (s *Server) handleImportKnowledge(c *fiber.Ctx) error {
	values, err := s.manychatClient.BotFieldValues(c.UserContext())
	if err != nil {
		return err
	}

	count, err := s.knowledgeSvc.ImportEntries(values)
	if err != nil {
		return err
	}

	return c.JSON(importResponse{Imported: count})
}

func (s *Server) handleListProducts(c *fiber.Ctx) error {
	products, err := s.knowledgeSvc.Products()
	if err != nil {
		return err
	}

	return c.JSON(products)
}

func (s *Server) handleUpsertProduct(c *fiber.Ctx) error {
	var product knowledge.Product
	if err := c.BodyParser(&product); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product")
	}

	if err := s.knowledgeSvc.UpsertProduct(product); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(product)
}

func (s *Server) handleListFlows(c *fiber.Ctx) error {
	flows, err := s.manychatClient.GetFlows(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(flows)
}

func (s *Server) handleListCustomFields(c *fiber.Ctx) error {
	fields, err := s.manychatClient.GetCustomFields(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fields)
}

func (s *Server) handleLogs(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid limit")
	}

	records, err := s.botlogSvc.Tail(limit)
	if err != nil {
		return err
	}

	return c.JSON(records)
}

func (s *Server) handleShippingQuote(c *fiber.Ctx) error {
	var req envia.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid quote request")
	}

	rates, err := s.enviaClient.Quote(c.UserContext(), req)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(rates)
}
