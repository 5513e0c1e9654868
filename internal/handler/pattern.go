package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/three-level-auth/internal/logging"
	"github.com/iliyamo/three-level-auth/internal/service"
)

// PatternHandler serves pattern enrollment and validation.
type PatternHandler struct {
	Patterns *service.PatternService
	Log      logging.Logger
}

func NewPatternHandler(p *service.PatternService, log logging.Logger) *PatternHandler {
	return &PatternHandler{Patterns: p, Log: log}
}

type patternReq struct {
	UserID  string `json:"user_id"`
	Pattern []int  `json:"pattern"`
}

// Recognition: POST /Pattern_Recognition.  Stores a new pattern for the user.
func (h *PatternHandler) Recognition(c echo.Context) error {
	var req patternReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	id, err := parseUserID(req.UserID)
	if err != nil {
		return respondError(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rec, err := h.Patterns.Enroll(ctx, id, req.Pattern)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"inserted_id": rec.String()})
}

// Validation: POST /Pattern_Validation.  Compares the submitted pattern with
// the stored one.
func (h *PatternHandler) Validation(c echo.Context) error {
	var req patternReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	id, err := parseUserID(req.UserID)
	if err != nil {
		return respondError(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Patterns.Validate(ctx, id, req.Pattern); err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Pattern is valid"})
}
