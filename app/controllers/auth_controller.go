package controllers

import (
	"net/http"

	"github.com/casatartufo/tartufo/app/services"
	"github.com/casatartufo/tartufo/app/views"
	"github.com/casatartufo/tartufo/pkg/bind"
	"github.com/casatartufo/tartufo/pkg/logger"
	"github.com/casatartufo/tartufo/pkg/middleware"
	"github.com/casatartufo/tartufo/pkg/response"
	"github.com/casatartufo/tartufo/pkg/session"
)

// AuthController exposes registration, login and session endpoints.
type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type registerInput struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required"`
	Address  string `json:"address"  validate:"nullable,max=200"`
}

// Register creates a new account. Registration does not log the user in.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.Register(in.Name, in.Email, in.Password, in.Address)
	if err != nil {
		response.FromError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("user registered", "user_id", user.ID)
	response.Created(w, "User registered successfully", views.NewUserView(user))
}

type loginInput struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and binds the session to the user id.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.Login(in.Email, in.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}

	sess := session.FromCtx(r)
	sess.Set("user_id", user.ID)
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("session save failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.SuccessMessage(w, "Login successful", views.NewUserView(user))
}

// Logout clears the session. Safe to call repeatedly.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	sess.Invalidate()
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("session save failed", "error", err)
	}

	response.SuccessMessage(w, "Logout successful", nil)
}

type sessionState struct {
	LoggedIn bool            `json:"logged_in"`
	User     *views.UserView `json:"user,omitempty"`
}

// CheckSession reports whether the caller is logged in. When the session
// points at a user that no longer exists, it self-heals by clearing the
// stale session instead of erroring forever.
func (c *AuthController) CheckSession(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)

	userID, ok := sess.GetUint("user_id")
	if !ok {
		response.Success(w, sessionState{LoggedIn: false})
		return
	}

	user, err := c.service.FindUser(userID)
	if err != nil {
		sess.Invalidate()
		_ = sess.Save(w)
		response.JSON(w, http.StatusNotFound, "User not found, session cleared", sessionState{LoggedIn: false})
		return
	}

	view := views.NewUserView(user)
	response.Success(w, sessionState{LoggedIn: true, User: &view})
}

type updateAddressInput struct {
	// Pointer distinguishes an absent field from an explicitly empty address.
	Address *string `json:"address"`
}

// UpdateAddress mutates the authenticated user's delivery address.
func (c *AuthController) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in updateAddressInput
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Address == nil {
		response.Error(w, http.StatusBadRequest, "Missing address field")
		return
	}

	user, err := c.service.UpdateAddress(userID, *in.Address)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.SuccessMessage(w, "Address updated successfully", views.NewUserView(user))
}
