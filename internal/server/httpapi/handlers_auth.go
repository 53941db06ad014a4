package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogward/blogward/internal/common"
	"github.com/blogward/blogward/internal/logging"
	"github.com/blogward/blogward/internal/server/services"
)

// AuthHandler serves the /auth routes: registration, login/logout and
// self-service account maintenance.
type AuthHandler struct {
	users           UserDirectory
	log             logging.Logger
	cookieMaxAgeSec int
}

func NewAuthHandler(users UserDirectory, log logging.Logger, cookieMaxAgeSec int) *AuthHandler {
	return &AuthHandler{users: users, log: log, cookieMaxAgeSec: cookieMaxAgeSec}
}

// Register handles POST /auth/registration. All checks run before any
// persistence; the first failing check wins.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	taken, err := h.users.EmailTaken(c.Request.Context(), req.Email)
	if err != nil {
		h.log.Error(c.Request.Context(), "email lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if taken {
		c.JSON(http.StatusForbidden, gin.H{"message": "A user with this email already exists"})
		return
	}

	if verr := req.Validate(); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message, "field": verr.Field})
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.FullName, req.Email, req.Password); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			c.JSON(http.StatusForbidden, gin.H{"message": "A user with this email already exists"})
			return
		}
		h.log.Error(c.Request.Context(), "registration failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successful registration"})
}

// Login handles POST /auth/login: verifies credentials and sets the
// session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, common.ErrorUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
		default:
			h.log.Error(c.Request.Context(), "login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"message": "Successful authorization"})
}

// Logout handles DELETE /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "The user logged out"})
}

// Account handles GET /auth/account.
func (h *AuthHandler) Account(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": identity})
}

// UpdateAccount handles PUT /auth/account. A present password field is
// re-hashed; the rest of the patch is applied verbatim.
func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
		return
	}

	var input services.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	matched, err := h.users.Update(c.Request.Context(), identity, input)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "A user with this email already exists"})
			return
		}
		h.log.Error(c.Request.Context(), "account update failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if matched == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "The user info was not updated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "The user info was updated"})
}

// DeleteAccount handles DELETE /auth/account: removes the account after
// re-verifying the password, then clears the session.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	deleted, err := h.users.Delete(c.Request.Context(), identity, req.Password)
	if err != nil {
		h.log.Error(c.Request.Context(), "account deletion failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Sorry, operation failed. Try again"})
		return
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "The account deleted"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookie, token, h.cookieMaxAgeSec, "/", "", false, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookie, "", -1, "/", "", false, true)
}
