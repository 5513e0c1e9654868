package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/three-level-auth/internal/logging"
	"github.com/iliyamo/three-level-auth/internal/service"
)

// FacialHandler serves facial image capture and verification.
type FacialHandler struct {
	Faces *service.FaceService
	Log   logging.Logger
}

func NewFacialHandler(f *service.FaceService, log logging.Logger) *FacialHandler {
	return &FacialHandler{Faces: f, Log: log}
}

// imageReq carries a data-URL encoded image, e.g. "data:image/jpeg;base64,...".
type imageReq struct {
	UserID string `json:"user_id"`
	Image  string `json:"image"`
}

// Capture: POST /api/facial_capture.  Replaces the user's stored image.
func (h *FacialHandler) Capture(c echo.Context) error {
	var req imageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	id, err := parseUserID(req.UserID)
	if err != nil {
		return respondError(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Faces.Enroll(ctx, id, req.Image); err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, accountResp{Message: "Facial image stored successfully", UserID: id.String()})
}

// Verification: POST /facial_verification.  Compares the submitted image with
// the stored one.
func (h *FacialHandler) Verification(c echo.Context) error {
	var req imageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	id, err := parseUserID(req.UserID)
	if err != nil {
		return respondError(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Faces.Verify(ctx, id, req.Image); err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Facial image verified successfully"})
}
