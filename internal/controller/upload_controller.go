package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdf-knowledge-be/internal/dto"
	"pdf-knowledge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type uploadController struct {
	knowledgeService service.IKnowledgeService
	uploadDir        string
}

func NewUploadController(knowledgeService service.IKnowledgeService, uploadDir string) IUploadController {
	return &uploadController{
		knowledgeService: knowledgeService,
		uploadDir:        uploadDir,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge/v1")
	h.Post("/upload", c.Upload)
}

func (c *uploadController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file part in request"})
	}
	if fileHeader.Filename == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file selected"})
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only PDF files are allowed"})
	}

	if err := os.MkdirAll(c.uploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	// Timestamp prefix keeps repeated uploads of the same file distinct.
	timestamp := time.Now().Format("20060102_150405")
	uniqueFilename := fmt.Sprintf("%s_%s", timestamp, secureFilename(fileHeader.Filename))
	savePath := filepath.Join(c.uploadDir, uniqueFilename)

	if err := ctx.SaveFile(fileHeader, savePath); err != nil {
		return fmt.Errorf("failed to save uploaded file: %w", err)
	}

	absPath, err := filepath.Abs(savePath)
	if err != nil {
		absPath = savePath
	}

	sessionID, _ := ctx.Locals("session_id").(string)

	message, err := c.knowledgeService.ProcessUpload(ctx.Context(), sessionID, absPath, uniqueFilename)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process file: " + err.Error()})
	}

	return ctx.JSON(dto.UploadResponse{
		Success:  true,
		Message:  message,
		Filename: uniqueFilename,
		Filepath: absPath,
	})
}

// secureFilename strips path components and whitespace so a hostile filename
// cannot escape the upload directory.
func secureFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, name)
}
