// Package web serves the artwizard upload, preview and download page.
package web

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/wbrown/artwizard"
	"github.com/wbrown/artwizard/internal/config"
	"github.com/wbrown/artwizard/internal/log"
)

//go:embed static/index.html
var indexHTML []byte

// bodySlack leaves room for multipart framing and form fields on top of
// the upload itself.
const bodySlack = 1 << 20

// Server is the artwizard HTTP server.
type Server struct {
	app         *fiber.App
	cfg         *config.Config
	transformer *artwizard.Transformer
	spool       *Spool
	sem         chan struct{}
	done        chan struct{}
	doneOnce    sync.Once
	log         *slog.Logger
}

// NewServer wires the routes for cfg around transformer.
func NewServer(cfg *config.Config, transformer *artwizard.Transformer) *Server {
	s := &Server{
		cfg:         cfg,
		transformer: transformer,
		spool:       NewSpool(cfg.TempDir),
		sem:         make(chan struct{}, cfg.MaxConcurrent),
		done:        make(chan struct{}),
		log:         log.With("component", "web"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "ArtWizard",
		DisableStartupMessage: true,
		BodyLimit:             cfg.MaxUploadBytes() + bodySlack,
		ErrorHandler:          s.handleError,
	})

	app.Use(fiberrecover.New())
	app.Use(cors.New())
	app.Use(s.logRequests)

	app.Get("/", s.handleIndex)
	app.Get("/healthz", s.handleHealth)

	api := app.Group("/api")
	api.Get("/filters", s.handleFilters)
	api.Post("/preview", s.handlePreview)
	api.Post("/transform", s.handleTransform)

	s.app = app
	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens on the configured address and blocks until shutdown.
func (s *Server) Start() error {
	s.log.Info("listening",
		"addr", s.cfg.Listen,
		"backend", s.transformer.Backend().Name(),
		"max_upload_mb", s.cfg.MaxUploadMB)
	return s.app.Listen(s.cfg.Listen)
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.drain()
	return s.app.ShutdownWithContext(ctx)
}

// drain releases every request still queued for a transform slot.
func (s *Server) drain() {
	s.doneOnce.Do(func() { close(s.done) })
}

// acquire waits for one of the max_concurrent transform slots. Queued
// requests give up when ctx is canceled or the server shuts down.
func (s *Server) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fiber.NewError(fiber.StatusServiceUnavailable, "request canceled while queued")
	case <-s.done:
		return fiber.NewError(fiber.StatusServiceUnavailable, "server is shutting down")
	}
}

func (s *Server) release() {
	<-s.sem
}

// logRequests logs one line per request. Errors are rendered here so
// the logged status is the one the client sees.
func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	if err := c.Next(); err != nil {
		if herr := s.handleError(c, err); herr != nil {
			return herr
		}
	}
	s.log.Debug("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start))
	return nil
}

// handleError renders errors as {"error": "..."} with a status derived
// from the error.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, artwizard.ErrUnknownFilter), errors.Is(err, artwizard.ErrEmptyImage):
		code = fiber.StatusBadRequest
	}

	if code >= fiber.StatusInternalServerError {
		s.log.Error("request failed", "path", c.Path(), "error", err)
	} else {
		s.log.Debug("request rejected", "path", c.Path(), "status", code, "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
