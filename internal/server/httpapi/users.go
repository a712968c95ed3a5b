package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type registeredUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type loginResult struct {
	Token string `json:"token"`
}

const msgPasswordTooLong = "Password must be at most 72 bytes"

func (h *handler) register(c *gin.Context) {
	ctx := c.Request.Context()

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug(ctx, "invalid register request", "fields", invalidFields(err))
		respond(c, http.StatusBadRequest, "Email, name, and password are required", nil)
		return
	}

	u, err := h.users.Register(ctx, req.Email, req.Name, req.Password)
	switch {
	case err == nil:
		respond(c, http.StatusOK, "User created successfully", registeredUser{ID: u.ID, Email: u.Email})
	case errors.Is(err, common.ErrMissingField):
		respond(c, http.StatusBadRequest, "Email, name, and password are required", nil)
	case errors.Is(err, common.ErrPasswordTooLong):
		respond(c, http.StatusBadRequest, msgPasswordTooLong, nil)
	case errors.Is(err, common.ErrDuplicateIdentity):
		respond(c, http.StatusBadRequest, "User with this email already exists", nil)
	default:
		h.internalError(c, "register failed", err)
	}
}

func (h *handler) login(c *gin.Context) {
	ctx := c.Request.Context()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	token, err := h.users.Login(ctx, req.Email, req.Password)
	switch {
	case err == nil:
		h.metrics.loginOutcome("success")
		respond(c, http.StatusOK, "Login successful", loginResult{Token: token})
	case errors.Is(err, common.ErrInvalidCredentials):
		h.metrics.loginOutcome("invalid_credentials")
		respond(c, http.StatusUnauthorized, "Invalid email or password", nil)
	default:
		h.metrics.loginOutcome("error")
		h.internalError(c, "login failed", err)
	}
}

// logout only acknowledges; issued tokens stay valid until they expire.
func (h *handler) logout(c *gin.Context) {
	respond(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *handler) listUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.internalError(c, "list users failed", err)
		return
	}
	respond(c, http.StatusOK, "Users retrieved successfully", users)
}

func (h *handler) userInfo(c *gin.Context) {
	id, ok := currentUserID(c)
	if !ok {
		return
	}

	u, err := h.users.GetUserInfo(c.Request.Context(), id)
	switch {
	case err == nil:
		respond(c, http.StatusOK, "User information retrieved successfully", u)
	case errors.Is(err, common.ErrorNotFound):
		respond(c, http.StatusNotFound, "User not found", nil)
	default:
		h.internalError(c, "user info failed", err)
	}
}

func (h *handler) changePassword(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := currentUserID(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug(ctx, "invalid change password request", "fields", invalidFields(err))
		respond(c, http.StatusBadRequest, "Old password and new password are required", nil)
		return
	}

	err := h.users.ChangePassword(ctx, id, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		respond(c, http.StatusOK, "Password updated successfully", nil)
	case errors.Is(err, common.ErrMissingField):
		respond(c, http.StatusBadRequest, "Old password and new password are required", nil)
	case errors.Is(err, common.ErrPasswordTooLong):
		respond(c, http.StatusBadRequest, msgPasswordTooLong, nil)
	case errors.Is(err, common.ErrInvalidOldPassword), errors.Is(err, common.ErrorNotFound):
		respond(c, http.StatusUnauthorized, "Invalid old password", nil)
	default:
		h.internalError(c, "change password failed", err)
	}
}
