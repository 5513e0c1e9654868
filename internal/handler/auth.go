package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/three-level-auth/internal/logging"
	"github.com/iliyamo/three-level-auth/internal/service"
)

// AuthHandler serves the password factor: signup and login.
type AuthHandler struct {
	Accounts *service.AccountService
	Log      logging.Logger
}

func NewAuthHandler(a *service.AccountService, log logging.Logger) *AuthHandler {
	return &AuthHandler{Accounts: a, Log: log}
}

// ----- DTOs -----

type signupReq struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type accountResp struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// SignUp: POST /SignUp.  Creates the account and returns its id.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	id, err := h.Accounts.Signup(ctx, service.SignupInput{Email: req.Email, Username: req.Username, Password: req.Password})
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, accountResp{Message: "User created successfully", UserID: id.String()})
}

// Login: POST /login.  Checks the password and returns the account id.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	id, err := h.Accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, accountResp{Message: "Login successful", UserID: id.String()})
}
