package controllers

import (
	"culinary-calc/backend/app/dto"
	"culinary-calc/backend/app/middleware"
	"culinary-calc/backend/app/models"
	"culinary-calc/backend/app/services"
	"net/http"
	"strings"
)

const (
	minPasswordLen = 6
	// bcrypt ignores everything past 72 bytes
	maxPasswordLen = 72
)

type AuthController struct {
	Auth     *services.AuthService
	Activity *services.ActivityService
	Cookie   middleware.SessionCookie
}

func NewAuthController(auth *services.AuthService, activity *services.ActivityService, cookie middleware.SessionCookie) *AuthController {
	return &AuthController{Auth: auth, Activity: activity, Cookie: cookie}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "Name, email and password are required")
		return
	}
	if len(req.Password) < minPasswordLen {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "Password must be at least 6 characters")
		return
	}
	if len(req.Password) > maxPasswordLen {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "Password must be at most 72 bytes")
		return
	}

	u, err := c.Auth.CreateUser(r.Context(), services.NewUser{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !c.startSession(w, r, u) {
		return
	}
	c.record(r, u.ID, services.ActionRegister)
	writeJSON(w, http.StatusOK, dto.AuthResponse{User: summary(u)})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "Email and password are required")
		return
	}
	u, err := c.Auth.AuthenticateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if u == nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}
	if !c.startSession(w, r, u) {
		return
	}
	c.record(r, u.ID, services.ActionLogin)
	writeJSON(w, http.StatusOK, dto.AuthResponse{User: summary(u)})
}

// Logout ends the current session and always clears the cookie.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if token := c.Cookie.Read(r); token != "" {
		if err := c.Auth.DeleteSession(r.Context(), token); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}
	c.Cookie.Clear(w)
	if id, ok := middleware.IdentityFromHeaders(r); ok {
		c.record(r, id.UserID, services.ActionLogout)
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	u, err := c.Auth.GetUserByID(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := dto.UserSummary{ID: id.UserID, Email: id.Email, Role: id.Role.String()}
	if u != nil {
		out.Name = u.Name
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *AuthController) startSession(w http.ResponseWriter, r *http.Request, u *models.User) bool {
	token, err := c.Auth.CreateSession(r.Context(), u.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return false
	}
	c.Cookie.Set(w, token)
	return true
}

func (c *AuthController) record(r *http.Request, userID, action string) {
	c.Activity.Record(r.Context(), activityFor(r, userID, action, "user", userID, nil))
}

func summary(u *models.User) dto.UserSummary {
	return dto.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role.String()}
}
