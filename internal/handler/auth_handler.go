package handler

import (
	"encoding/json"
	"net/http"

	"inkwell-server/internal/domain"
	"inkwell-server/internal/middleware"
	"inkwell-server/internal/service"
	"inkwell-server/pkg/response"

	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	service  *service.AuthService
	validate *validator.Validate
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	auth, err := h.service.Register(&req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, auth)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, "Email and password are required.")
		return
	}

	auth, err := h.service.Login(&req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, auth)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	tokens, err := h.service.Refresh(&req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, tokens)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Me(middleware.GetUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, user)
}
