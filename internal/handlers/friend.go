package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thanhng/socialhub/internal/models"
	"github.com/thanhng/socialhub/internal/services"
)

type FriendHandler struct {
	friendService services.FriendServiceInterface
	userService   services.UserServiceInterface
}

func NewFriendHandler(friendService services.FriendServiceInterface, userService services.UserServiceInterface) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
		userService:   userService,
	}
}

type SendRequestRequest struct {
	UserID string `json:"user_id"`
}

type FriendListResponse struct {
	Friends []models.FriendProfile `json:"friends"`
}

type RequestListResponse struct {
	Requests []models.IncomingRequest `json:"requests"`
}

type UserSearchResponse struct {
	Users []models.UserSearchResult `json:"users"`
}

type ReconcileResponse struct {
	Repaired int `json:"repaired"`
}

func (h *FriendHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friends, err := h.userService.ListFriends(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing friends: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, FriendListResponse{Friends: friends})
}

func (h *FriendHandler) Search(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	users, err := h.friendService.SearchUsers(r.Context(), user.ID, r.URL.Query().Get("q"))
	if err != nil {
		log.Printf("Error searching users: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, UserSearchResponse{Users: users})
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	toID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	_, err = h.friendService.SendRequest(r.Context(), user.ID, toID)
	if errors.Is(err, services.ErrCannotFriendSelf) {
		writeError(w, http.StatusBadRequest, "Cannot send friend request to yourself")
		return
	}
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if errors.Is(err, services.ErrAlreadyFriends) {
		writeError(w, http.StatusConflict, "Already friends")
		return
	}
	if errors.Is(err, services.ErrRequestExists) {
		writeError(w, http.StatusConflict, "Friend request already sent")
		return
	}
	if err != nil {
		log.Printf("Error sending friend request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Friend request sent"})
}

func (h *FriendHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requests, err := h.friendService.ListIncoming(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing friend requests: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, RequestListResponse{Requests: requests})
}

func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	_, err := h.friendService.Accept(r.Context(), user.ID, requestID)
	if errors.Is(err, services.ErrRequestNotFound) {
		writeError(w, http.StatusNotFound, "Friend request not found")
		return
	}
	if err != nil {
		log.Printf("Error accepting friend request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Friend request accepted"})
}

func (h *FriendHandler) Status(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	otherID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	status, err := h.friendService.Status(r.Context(), user.ID, otherID)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("Error checking friendship status: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func (h *FriendHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	repaired, err := h.friendService.Reconcile(r.Context())
	if err != nil {
		log.Printf("Error reconciling friendships: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ReconcileResponse{Repaired: repaired})
}
