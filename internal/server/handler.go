package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/valpere/verbico/internal/catalog"
	"github.com/valpere/verbico/internal/detector"
	"github.com/valpere/verbico/internal/logger"
	"github.com/valpere/verbico/internal/translator"
)

// Detector is the detection bridge as seen by the handlers.
type Detector interface {
	Detect(ctx context.Context, text string) detector.Detection
}

type errorResponse struct {
	Error string `json:"error"`
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
	SourceLanguage string `json:"sourceLanguage"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Passthrough    bool   `json:"passthrough,omitempty"`
}

type detectRequest struct {
	Text string `json:"text"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type Handler struct {
	translator translator.Service
	detector   Detector
}

func NewHandler(t translator.Service, d Detector) *Handler {
	return &Handler{translator: t, detector: d}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/translate", h.Translate)
	g.POST("/detect-language", h.DetectLanguage)
	g.GET("/languages", h.Languages)
}

// Translate forwards one translation to the bridge. Upstream failures are
// reported with a single generic message.
func (h *Handler) Translate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Text is required"})
	}
	if req.TargetLanguage == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Target language is required"})
	}
	if !catalog.IsSupported(req.TargetLanguage) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Unsupported target language"})
	}
	if req.SourceLanguage == "" {
		req.SourceLanguage = catalog.Auto
	}
	if req.SourceLanguage != catalog.Auto && !catalog.IsSupported(req.SourceLanguage) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Unsupported source language"})
	}

	res, err := h.translator.Translate(c.Request().Context(), translator.Request{
		Text:       req.Text,
		SourceLang: req.SourceLanguage,
		TargetLang: req.TargetLanguage,
	})
	if err != nil {
		logger.Error("translate failed",
			"module", "server",
			"action", "translate",
			"result", "failed",
			"source", req.SourceLanguage,
			"target", req.TargetLanguage,
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to translate text"})
	}

	logger.Debug("translate",
		"module", "server",
		"action", "translate",
		"result", "ok",
		"service", res.Service,
		"passthrough", res.Passthrough,
		"duration_ms", res.Latency.Milliseconds(),
	)
	return c.JSON(http.StatusOK, translateResponse{
		TranslatedText: res.Text,
		Passthrough:    res.Passthrough,
	})
}

// DetectLanguage always answers 200 once the input is valid.
func (h *Handler) DetectLanguage(c echo.Context) error {
	var req detectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Text is required"})
	}

	d := h.detector.Detect(c.Request().Context(), req.Text)
	logger.Debug("detect",
		"module", "server",
		"action", "detect",
		"result", "ok",
		"language", d.Code,
		"strategy", d.Strategy,
	)
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Languages(c echo.Context) error {
	return c.JSON(http.StatusOK, catalog.All())
}

func healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}
