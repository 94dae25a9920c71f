package handlers

import (
	"encoding/json"
	"net/http"

	apimw "github.com/hirwaf/task-management-be/internal/api/middleware"
	"github.com/hirwaf/task-management-be/internal/entity"
	"github.com/hirwaf/task-management-be/internal/usecase"
)

type UserHandler struct {
	userService *usecase.UserService
}

func NewUserHandler(userService *usecase.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entity.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "name, email and password are required", http.StatusBadRequest)
		return
	}

	resp, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case entity.ErrEmailTaken:
			http.Error(w, "email already exists", http.StatusBadRequest)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entity.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	resp, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case entity.ErrInvalidCredentials:
			http.Error(w, "invalid credentials", http.StatusBadRequest)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /users - все кроме вызывающего
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	userID := apimw.UserID(r)

	users, err := h.userService.ListUsers(r.Context(), userID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []entity.User{}
	}
	writeJSON(w, http.StatusOK, users)
}
