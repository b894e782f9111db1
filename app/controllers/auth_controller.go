package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"griddle/app/apperrors"
	"griddle/app/models"
	"griddle/app/services"
	"griddle/util"
)

// AuthController handles registration and login
type AuthController struct {
	userService *services.UserService
	jwtSecret   string
	jwtTTL      time.Duration
}

// NewAuthController creates a new AuthController
func NewAuthController(userService *services.UserService, jwtSecret string, jwtTTL time.Duration) *AuthController {
	return &AuthController{
		userService: userService,
		jwtSecret:   jwtSecret,
		jwtTTL:      jwtTTL,
	}
}

// Register handles creating a new user account
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Avatar   string `json:"avatar"`
		Role     string `json:"role"`
		Bio      string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apperrors.Write(w, apperrors.Wrap(apperrors.ErrBadRequest, "Invalid JSON", err))
		return
	}

	user := &models.User{
		Name:   body.Name,
		Email:  body.Email,
		Avatar: body.Avatar,
		Role:   body.Role,
		Bio:    body.Bio,
	}
	if err := ac.userService.Register(user, body.Password); err != nil {
		apperrors.Write(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, envelope{
		"status":  "success",
		"message": "User registered",
		"data":    user,
	})
}

// Login handles verifying credentials and issuing a token
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apperrors.Write(w, apperrors.Wrap(apperrors.ErrBadRequest, "Invalid JSON", err))
		return
	}

	user, err := ac.userService.Login(body.Email, body.Password)
	if err != nil {
		apperrors.Write(w, err)
		return
	}

	token, err := util.GenerateToken(user.ID, ac.jwtSecret, ac.jwtTTL)
	if err != nil {
		apperrors.Write(w, apperrors.Wrap(apperrors.ErrInternal, "Failed to issue token", err))
		return
	}

	sendJSON(w, http.StatusOK, envelope{
		"status": "success",
		"token":  token,
		"data":   user,
	})
}
