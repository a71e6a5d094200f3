package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"booking-be/internal/middleware"
	"booking-be/internal/models"
	"booking-be/internal/service"
)

type AuthController struct {
	authService  service.AuthService
	tokenTTL     time.Duration
	secureCookie bool
}

// NewAuthController creates the auth endpoints. secureCookie sets the Secure
// flag on the session cookie and should be on in production.
func NewAuthController(authService service.AuthService, tokenTTL time.Duration, secureCookie bool) *AuthController {
	return &AuthController{
		authService:  authService,
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
	}
}

// Register handles POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req, "Name, email and password are required") {
		return
	}

	result, err := ac.authService.Register(c.Request.Context(), &req)
	if errors.Is(err, service.ErrUserExists) {
		respond(c, http.StatusBadRequest, "User already exists", nil)
		return
	}
	if err != nil {
		fail(c, err, "", "")
		return
	}

	ac.setSession(c, result.Token)
	respond(c, http.StatusCreated, "User created successfully", result.User)
}

// Login handles POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req, "Email and password are required") {
		return
	}

	result, err := ac.authService.Login(c.Request.Context(), &req)
	if errors.Is(err, service.ErrInvalidCredentials) {
		respond(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}
	if err != nil {
		fail(c, err, "", "")
		return
	}

	ac.setSession(c, result.Token)
	respond(c, http.StatusOK, "Login successful", result.User)
}

// Logout handles POST /auth/logout. It needs no session and always succeeds.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", ac.secureCookie, true)
	respond(c, http.StatusOK, "Logout successfully", nil)
}

// Me handles GET /auth/me
func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := ac.authService.GetUser(c.Request.Context(), userID)
	if errors.Is(err, service.ErrUserNotFound) {
		// the token outlived its user
		respond(c, http.StatusUnauthorized, "User not found", nil)
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	respond(c, http.StatusOK, "User Details", user)
}

func (ac *AuthController) setSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, token, int(ac.tokenTTL.Seconds()), "/", "", ac.secureCookie, true)
}
