// Package api exposes the parsing engine over HTTP for the upload flow.
package api

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/advisorkit/cas-parser/internal/casparser"
	"github.com/advisorkit/cas-parser/internal/extractor"
	"github.com/advisorkit/cas-parser/internal/models"
)

// ParseResponse is the JSON envelope returned by /api/parse.
type ParseResponse struct {
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Statement *models.Statement `json:"statement,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Service   *casparser.Service
	MaxUpload int64
}

// NewHandler builds a Handler. maxUploadMB caps the accepted file size.
func NewHandler(svc *casparser.Service, maxUploadMB int) *Handler {
	max := int64(maxUploadMB) << 20
	if max <= 0 || max > casparser.MaxFileSize {
		max = casparser.MaxFileSize
	}
	return &Handler{Service: svc, MaxUpload: max}
}

// Register sets up the HTTP routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/parse", h.HandleParse)
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": casparser.ParserVersion,
	})
}

// HandleParse accepts a multipart upload (field "file", optional field
// "password") and returns the parsed statement.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}
	if fileHeader.Size > h.MaxUpload {
		return writeError(c, fiber.StatusRequestEntityTooLarge, "File exceeds the upload size limit.")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}

	password := c.FormValue("password")

	st, err := h.Service.Parse(data, password)
	if err != nil {
		return writeError(c, statusFor(err), err.Error())
	}

	return c.JSON(ParseResponse{Success: true, Statement: st})
}

// statusFor maps pipeline errors to HTTP statuses: caller-fixable input
// problems are 4xx, everything else is a 500.
func statusFor(err error) int {
	var extErr *extractor.ExtractionError
	if errors.As(err, &extErr) {
		switch extErr.Reason {
		case extractor.ReasonEmpty, extractor.ReasonTooLarge, extractor.ReasonNotFound:
			return fiber.StatusBadRequest
		case extractor.ReasonWrongPassword, extractor.ReasonPasswordRequired:
			return fiber.StatusUnauthorized
		default:
			return fiber.StatusUnprocessableEntity
		}
	}
	var unknownErr *casparser.UnknownFormatError
	if errors.As(err, &unknownErr) {
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ParseResponse{Success: false, Error: msg})
}
