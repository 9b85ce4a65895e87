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

type MessageHandler struct {
	messageService services.MessageServiceInterface
}

func NewMessageHandler(messageService services.MessageServiceInterface) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type SendMessageRequest struct {
	ToUser   string `json:"to_user"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

type ThreadResponse struct {
	Messages []models.MessageView `json:"messages"`
}

type ConversationListResponse struct {
	Conversations []models.Conversation `json:"conversations"`
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	toID, err := primitive.ObjectIDFromHex(req.ToUser)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid recipient ID")
		return
	}

	msg, err := h.messageService.Send(r.Context(), user.ID, toID, req.Content, req.ImageURL)
	if errors.Is(err, services.ErrEmptyMessage) {
		writeError(w, http.StatusBadRequest, "Message content or image is required")
		return
	}
	if errors.Is(err, services.ErrNotFriends) {
		writeError(w, http.StatusForbidden, "Can only message friends")
		return
	}
	if err != nil {
		log.Printf("Error sending message: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (h *MessageHandler) Thread(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friendID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	messages, err := h.messageService.ListThread(r.Context(), user.ID, friendID)
	if errors.Is(err, services.ErrNotFriends) {
		writeError(w, http.StatusForbidden, "Can only view threads with friends")
		return
	}
	if err != nil {
		log.Printf("Error loading thread: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ThreadResponse{Messages: messages})
}

func (h *MessageHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	conversations, err := h.messageService.ListConversations(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing conversations: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ConversationListResponse{Conversations: conversations})
}
