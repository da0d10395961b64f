package server

import (
	"errors"
	"log/slog"
	"xpresabot/app/client/envia"
	"xpresabot/app/client/manychat"
	"xpresabot/app/config"
	"xpresabot/app/service/botlog"
	"xpresabot/app/service/conversation"
	"xpresabot/app/service/knowledge"
	"xpresabot/app/service/settings"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

var _ do.Shutdownable = (*Server)(nil)

type Server struct {
	cfg *config.Config
	app *fiber.App

	conversationSvc *conversation.Service
	knowledgeSvc    *knowledge.Service
	settingsSvc     *settings.Service
	botlogSvc       *botlog.Service
	manychatClient  *manychat.Client
	enviaClient     *envia.Client
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:             do.MustInvoke[*config.Config](di),
		conversationSvc: do.MustInvoke[*conversation.Service](di),
		knowledgeSvc:    do.MustInvoke[*knowledge.Service](di),
		settingsSvc:     do.MustInvoke[*settings.Service](di),
		botlogSvc:       do.MustInvoke[*botlog.Service](di),
		manychatClient:  do.MustInvoke[*manychat.Client](di),
		enviaClient:     do.MustInvoke[*envia.Client](di),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          handleError,
	})

	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.handleHealth)

	api := s.app.Group("/api")

	api.Post("/webhooks/manychat", s.handleWebhook)
	api.Get("/webhooks/manychat", s.handleWebhookStatus)

	api.Get("/settings/bot", s.handleGetSettings)
	api.Put("/settings/bot", s.handleSetSettings)

	api.Get("/knowledge", s.handleListKnowledge)
	api.Post("/knowledge", s.handleUpsertKnowledge)
	api.Delete("/knowledge/:key", s.handleDeleteKnowledge)
	api.Post("/knowledge/import", s.handleImportKnowledge)

	api.Get("/products", s.handleListProducts)
	api.Post("/products", s.handleUpsertProduct)

	api.Get("/manychat/flows", s.handleListFlows)
	api.Get("/manychat/fields", s.handleListCustomFields)

	api.Get("/logs", s.handleLogs)

	api.Post("/shipping/quote", s.handleShippingQuote)
}

func (s *Server) Run() error {
	slog.Info("HTTP server listening", "addr", s.cfg.Server.Addr)

	return s.app.Listen(s.cfg.Server.Addr)
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("Request failed",
			"path", c.Path(),
			"error", err)
	}

	return c.Status(code).JSON(errorResponse{Error: err.Error()})
}
