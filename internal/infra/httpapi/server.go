package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"comms_governance/internal/app"
	"comms_governance/internal/infra/evidence"
)

const requestIDHeader = "X-Request-ID"

// Server exposes the registry, the dashboard projections and the insight gateway as JSON.
type Server struct {
	app      *fiber.App
	registry *app.RegistryService
	insights *app.InsightService
	evidence *evidence.Encoder
	logger   *logrus.Entry
	now      func() time.Time
}

func NewServer(
	registry *app.RegistryService,
	insights *app.InsightService,
	encoder *evidence.Encoder,
	baseLogger *logrus.Entry,
) *Server {
	s := &Server{
		registry: registry,
		insights: insights,
		evidence: encoder,
		logger:   baseLogger.WithField("component", "http"),
		now:      time.Now,
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
		// multipart framing on top of the largest accepted evidence file
		BodyLimit:    int(encoder.MaxBytes()) + 1<<20,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  90 * time.Second,
	})

	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, " + requestIDHeader,
	}))
	s.app.Use(s.requestLogger)

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := s.app.Group("/api")
	api.Get("/reference", s.getReference)

	api.Get("/entries", s.listEntries)
	api.Post("/entries", s.createEntry)
	api.Get("/entries/:id", s.getEntry)
	api.Put("/entries/:id", s.replaceEntry)

	api.Get("/stats", s.getStats)
	api.Get("/calendar", s.getCalendar)

	api.Post("/insights", s.requestInsights)
	api.Get("/insights/latest", s.latestInsights)

	api.Post("/evidence", s.uploadEvidence)
}

// requestLogger tags each request with an id and logs its outcome.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	id := c.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDHeader, id)
	c.Locals("reqid", id)

	start := time.Now()
	err := c.Next()
	if err != nil {
		// render now so the logged status is the one sent
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			return herr
		}
	}

	fields := logrus.Fields{
		"request_id": id,
		"method":     c.Method(),
		"path":       c.OriginalURL(),
		"status":     c.Response().StatusCode(),
		"duration":   time.Since(start).String(),
	}
	entry := s.logger.WithFields(fields)
	switch status := c.Response().StatusCode(); {
	case status >= fiber.StatusInternalServerError:
		entry.Error("Request failed")
	case status >= fiber.StatusBadRequest:
		entry.Info("Request rejected")
	default:
		entry.Debug("Request served")
	}
	return nil
}

// requestLog returns the logger of the current request.
func (s *Server) requestLog(c *fiber.Ctx) *logrus.Entry {
	id, _ := c.Locals("reqid").(string)
	return s.logger.WithField("request_id", id)
}

func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.WithField("addr", addr).Info("HTTP server listening")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server...")
	return s.app.ShutdownWithContext(ctx)
}
