package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/thanhng/socialhub/internal/models"
	"github.com/thanhng/socialhub/internal/services"
)

type UserHandler struct {
	userService services.UserServiceInterface
}

func NewUserHandler(userService services.UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

type RegisterResponse struct {
	User    models.UserView `json:"user"`
	Message string          `json:"message,omitempty"`
}

type UpdateProfileRequest struct {
	Name   *string `json:"name"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), req)
	if errors.Is(err, services.ErrMissingFields) {
		writeError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	if errors.Is(err, services.ErrEmailTaken) {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		log.Printf("Error registering user: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{User: user.View(), Message: "User registered"})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("Error getting user: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, user.View())
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := models.ProfileUpdate{Name: req.Name, Bio: req.Bio, Avatar: req.Avatar}
	err := h.userService.UpdateProfile(r.Context(), user.ID, update)
	if errors.Is(err, services.ErrEmptyUpdate) {
		writeError(w, http.StatusBadRequest, "No fields to update")
		return
	}
	if errors.Is(err, services.ErrMissingFields) {
		writeError(w, http.StatusBadRequest, "Name cannot be blank")
		return
	}
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Profile updated"})
}
