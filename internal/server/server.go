// Package server exposes the pipeline over HTTP: chat, health, admin stats
// and Prometheus metrics.
package server

import (
	"strings"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"lexai/internal/domain"
)

// Server wraps the fiber app and the pipeline service.
type Server struct {
	app *fiber.App
	svc domain.LegalService
	log *logrus.Entry
}

// New creates the HTTP server with all routes registered.
func New(svc domain.LegalService, log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	app := fiber.New(fiber.Config{
		AppName:               "LEXAI Backend API",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	prometheus := fiberprometheus.New("lexai")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	s := &Server{app: app, svc: svc, log: log.WithField("component", "server")}

	app.Get("/api/health", s.handleHealth)
	app.Post("/chat", s.handleChat)
	app.Get("/admin/stats", s.handleStats)
	return s
}

// Listen starts serving on addr, blocking until shutdown.
func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error { return s.app.Shutdown() }

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string                `json:"response"`
	Metadata domain.AnswerMetadata `json:"metadata"`
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	requestID := uuid.NewString()
	log := s.log.WithField("request_id", requestID)
	log.WithField("query_len", len(req.Message)).Info("chat request")

	// the pipeline is total: even an empty message yields a well-formed
	// no-information answer rather than an error
	record := s.svc.Answer(strings.TrimSpace(req.Message))
	return c.JSON(chatResponse{Response: record.Markdown, Metadata: record.Metadata})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	return c.JSON(s.svc.Stats())
}
