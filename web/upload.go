package web

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/wbrown/artwizard/imageutil"
)

// Spool hands out temp file names for uploads. Names combine a random
// UUID with the upload's extension so concurrent requests never collide.
type Spool struct {
	dir string
}

// NewSpool creates a spool in dir, or the system temp dir when empty.
func NewSpool(dir string) *Spool {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Spool{dir: dir}
}

// Path returns a fresh file name for an upload with the given extension.
func (s *Spool) Path(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Join(s.dir, "upload-"+uuid.NewString()+ext)
}

// readUpload spools the "image" form file to disk, decodes it and removes
// the spooled copy.
func (s *Server) readUpload(c *fiber.Ctx) (*imageutil.RGBAImage, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "missing image upload")
	}
	return s.decodeUpload(c, fh)
}

func (s *Server) decodeUpload(c *fiber.Ctx, fh *multipart.FileHeader) (*imageutil.RGBAImage, error) {
	if fh.Size > int64(s.cfg.MaxUploadBytes()) {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("upload exceeds %d MB", s.cfg.MaxUploadMB))
	}
	if !imageutil.IsSupportedExtension(fh.Filename) {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("unsupported file type %q (expected jpg, jpeg or png)", filepath.Ext(fh.Filename)))
	}

	path := s.spool.Path(filepath.Ext(fh.Filename))
	defer os.Remove(path)
	if err := c.SaveFile(fh, path); err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}

	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "could not read image: "+err.Error())
	}
	return img, nil
}
