package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roomescape/reservation-service/internal/service"
)

// AuthHandler bundles dependencies for the auth endpoints. tokenTTL
// controls the lifetime of the `token` cookie, matching the lifetime of
// the token inside it.
type AuthHandler struct {
	Auth     *service.AuthService
	TokenTTL time.Duration
}

func NewAuthHandler(auth *service.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{Auth: auth, TokenTTL: tokenTTL}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type memberResp struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register creates a customer account. POST /v1/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	m, err := h.Auth.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, memberResp{
		ID: m.ID, Name: m.Name, Email: m.Email, Role: string(m.Role),
	})
}

// Login verifies the credential and sets the signed identity token as an
// HttpOnly cookie named `token`. POST /v1/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	tok, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    tok,
		Path:     "/",
		Expires:  time.Now().Add(h.TokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, echo.Map{"token": tok})
}

// LoginCheck returns the display name of the authenticated caller.
// GET /v1/login/check.
func (h *AuthHandler) LoginCheck(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return fail(c, err)
	}
	name, err := h.Auth.Name(c.Request().Context(), caller.MemberID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"name": name})
}

// Logout clears the token cookie. The token itself stays valid until it
// expires; sessions are stateless and nothing is tracked server-side.
// POST /v1/logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}
