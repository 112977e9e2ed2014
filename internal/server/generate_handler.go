package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/csheth/learnmaster/internal/llm"
)

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Paragraph string `json:"paragraph"`
}

// GenerateResponse always carries both fields; Questions is never null.
type GenerateResponse struct {
	Summary   string   `json:"summary"`
	Questions []string `json:"questions"`
}

// GenerateHandler turns a paragraph into a study guide.
type GenerateHandler struct {
	llm    llm.Client
	logger *zap.Logger
}

// NewGenerateHandler creates a handler backed by client.
func NewGenerateHandler(client llm.Client, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{llm: client, logger: logger}
}

// HandleGenerate handles POST /generate.
func (h *GenerateHandler) HandleGenerate(c echo.Context) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Warn("failed to bind request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if strings.TrimSpace(req.Paragraph) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Paragraph cannot be empty")
	}
	if h.llm == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "No language model configured")
	}

	guide, err := llm.StudyGuide(c.Request().Context(), h.llm, req.Paragraph)
	switch {
	case errors.Is(err, llm.ErrUnparseable):
		// The model answered but ignored the layout; reply with empty sections.
		h.logger.Warn("unparseable completion", zap.String("model", h.llm.Name()), zap.Error(err))
	case err != nil:
		h.logger.Error("study guide generation failed", zap.String("model", h.llm.Name()), zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to generate summary")
	}

	questions := guide.Questions
	if questions == nil {
		questions = []string{}
	}
	h.logger.Debug("study guide generated",
		zap.Int("paragraph_chars", len(req.Paragraph)),
		zap.Int("questions", len(questions)))
	return c.JSON(http.StatusOK, GenerateResponse{Summary: guide.Summary, Questions: questions})
}
