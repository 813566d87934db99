package web

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/wbrown/artwizard"
	"github.com/wbrown/artwizard/imageutil"
)

// FiltersResponse is the body of GET /api/filters.
type FiltersResponse struct {
	Backend string                 `json:"backend"`
	Filters []artwizard.FilterInfo `json:"filters"`
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.Send(indexHTML)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleFilters(c *fiber.Ctx) error {
	return c.JSON(FiltersResponse{
		Backend: s.transformer.Backend().Name(),
		Filters: artwizard.Filters,
	})
}

// handlePreview returns the upright, downscaled original as PNG.
func (s *Server) handlePreview(c *fiber.Ctx) error {
	img, err := s.readUpload(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := imageutil.EncodePNG(&buf, s.transformer.Preview(img)); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	c.Type("png")
	return c.Send(buf.Bytes())
}

// handleTransform applies the filter named by the "type" form field and
// returns the result as a PNG attachment with the filter's fixed name.
func (s *Server) handleTransform(c *fiber.Ctx) error {
	kind, err := artwizard.ParseFilterKind(c.FormValue("type"))
	if err != nil {
		return err
	}
	img, err := s.readUpload(c)
	if err != nil {
		return err
	}

	if err := s.acquire(c.UserContext()); err != nil {
		return err
	}
	res, err := s.transformer.Transform(kind, img)
	s.release()
	if err != nil {
		return err
	}

	data, err := res.PNG()
	if err != nil {
		return err
	}

	s.log.Info("transformed",
		"filter", res.Kind,
		"backend", res.Backend,
		"width", img.Width(),
		"height", img.Height(),
		"duration", res.Duration)

	c.Attachment(res.Filename)
	c.Type("png")
	c.Set("X-Artwizard-Backend", res.Backend)
	c.Set("X-Artwizard-Duration", res.Duration.String())
	return c.Send(data)
}
