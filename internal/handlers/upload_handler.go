package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"artisanmart/internal/forms"
	"artisanmart/internal/sandbox"
	"artisanmart/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
)

// UploadHandler accepts file batches and serves stored files.
type UploadHandler struct {
	uploads *sandbox.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploads *sandbox.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// RegisterRoutes registers POST /upload behind auth and the public file route.
func (h *UploadHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/upload", auth, h.HandleUpload)
	router.Get("/files/*", h.HandleGetFile)
}

// HandleUpload stores a multipart batch: an upload_type field and one or
// more "files" parts.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid multipart body",
			"error":   err.Error(),
		})
	}
	uploadType := strings.Join(form.Value["upload_type"], "")
	headers := form.File["files"]
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "At least one file is required",
		})
	}

	files := make([]sandbox.Upload, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > forms.MaxFileSize {
			return respondError(c, sandbox.ErrFileTooLarge, "Upload failed")
		}
		f, err := fh.Open()
		if err != nil {
			return respondError(c, fmt.Errorf("failed to open %s: %w", fh.Filename, err), "Upload failed")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return respondError(c, fmt.Errorf("failed to read %s: %w", fh.Filename, err), "Upload failed")
		}
		files = append(files, sandbox.Upload{Name: fh.Filename, Data: data})
	}

	urls, err := h.uploads.Store(c.UserContext(), uploadType, files)
	if err != nil {
		log.Printf("Error storing %s upload: %v", uploadType, err)
		return respondError(c, err, "Upload failed")
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%s uploaded successfully", capitalize(uploadType)),
		"urls":    urls,
	})
}

// HandleGetFile serves a stored object.
func (h *UploadHandler) HandleGetFile(c *fiber.Ctx) error {
	key := c.Params("*")
	rc, err := h.uploads.Open(c.UserContext(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("File '%s' not found", key),
			})
		}
		return respondError(c, err, "Could not read file")
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return respondError(c, err, "Could not read file")
	}
	c.Set(fiber.HeaderContentType, mimetype.Detect(data).String())
	return c.Send(data)
}

func capitalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
