package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/three-level-auth/internal/logging"
	"github.com/iliyamo/three-level-auth/internal/model"
	"github.com/iliyamo/three-level-auth/internal/service"
)

// requestTimeout bounds the store work done for one request.
const requestTimeout = 5 * time.Second

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorTable maps service errors to HTTP responses.  Order matters: the first
// entry matching via errors.Is wins.
var errorTable = []errorMapping{
	{service.ErrInvalidIdentifier, http.StatusBadRequest, "invalid user_id"},
	{service.ErrMissingField, http.StatusBadRequest, "email, username and password are required"},
	{service.ErrPasswordTooLong, http.StatusBadRequest, "password must be at most 72 bytes"},
	{service.ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
	{service.ErrUsernameTaken, http.StatusBadRequest, "Username already taken"},
	{service.ErrInvalidCredentials, http.StatusBadRequest, "Invalid email or password"},
	{service.ErrMalformedImage, http.StatusBadRequest, "Malformed image data"},
	{service.ErrAccountNotFound, http.StatusNotFound, "User not found"},
	{service.ErrRecordNotFound, http.StatusNotFound, "User not found"},
	{service.ErrNoStoredPattern, http.StatusBadRequest, "No pattern stored for this user"},
	{service.ErrNoStoredFace, http.StatusNotFound, "No facial image stored for this user"},
	{service.ErrPatternMismatch, http.StatusUnauthorized, "Invalid pattern"},
	{service.ErrFaceMismatch, http.StatusUnauthorized, "Facial image does not match"},
	{service.ErrStorageFailure, http.StatusInternalServerError, "Failed to store the image"},
	{errMissingFile, http.StatusBadRequest, "file is required"},
	{errUnreadableFile, http.StatusBadRequest, "unreadable file"},
}

// statusFor returns the HTTP status and client-facing message for err.
// Anything unmapped is an internal error whose details stay in the logs.
func statusFor(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "internal error"
}

func respondError(c echo.Context, log logging.Logger, err error) error {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError && log != nil {
		log.Error(c.Request().Context(), "request failed", "path", c.Path(), "err", err)
	}
	return c.JSON(status, echo.Map{"error": msg})
}

func parseUserID(raw string) (model.AccountID, error) {
	return model.ParseAccountID(raw)
}
