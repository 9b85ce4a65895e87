package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/thanhng/socialhub/internal/models"
	"github.com/thanhng/socialhub/internal/services"
)

type PostHandler struct {
	postService     services.PostServiceInterface
	reactionService services.ReactionServiceInterface
	commentService  services.CommentServiceInterface
}

func NewPostHandler(postService services.PostServiceInterface, reactionService services.ReactionServiceInterface, commentService services.CommentServiceInterface) *PostHandler {
	return &PostHandler{
		postService:     postService,
		reactionService: reactionService,
		commentService:  commentService,
	}
}

type CreatePostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

type PostListResponse struct {
	Posts []models.PostView `json:"posts"`
}

type LikeResponse struct {
	Liked bool `json:"liked"`
}

type ReactionRequest struct {
	Kind string `json:"kind"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), user.ID, req.Content, req.ImageURL)
	if errors.Is(err, services.ErrEmptyPost) {
		writeError(w, http.StatusBadRequest, "Post content or image is required")
		return
	}
	if err != nil {
		log.Printf("Error creating post: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	posts, err := h.postService.Feed(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error loading feed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, PostListResponse{Posts: posts})
}

func (h *PostHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	authorID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	posts, err := h.postService.ListByUser(r.Context(), user.ID, authorID)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if errors.Is(err, services.ErrNotFriends) {
		writeError(w, http.StatusForbidden, "Can only view posts of friends")
		return
	}
	if err != nil {
		log.Printf("Error listing posts: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, PostListResponse{Posts: posts})
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	err := h.postService.Delete(r.Context(), user.ID, postID)
	if errors.Is(err, services.ErrPostNotFound) {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if errors.Is(err, services.ErrNotPostAuthor) {
		writeError(w, http.StatusForbidden, "Only the author can delete a post")
		return
	}
	if err != nil {
		log.Printf("Error deleting post: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	liked, err := h.reactionService.ToggleLike(r.Context(), postID, user.ID)
	if errors.Is(err, services.ErrPostNotFound) {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("Error toggling like: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, LikeResponse{Liked: liked})
}

func (h *PostHandler) React(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var req ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.reactionService.SetReaction(r.Context(), postID, user.ID, models.ReactionKind(req.Kind))
	if errors.Is(err, services.ErrInvalidReaction) {
		writeError(w, http.StatusBadRequest, "Unrecognized reaction kind")
		return
	}
	if errors.Is(err, services.ErrPostNotFound) {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("Error setting reaction: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Reaction recorded"})
}

func (h *PostHandler) Comment(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.commentService.AddComment(r.Context(), postID, user.ID, req.Content)
	if errors.Is(err, services.ErrEmptyComment) {
		writeError(w, http.StatusBadRequest, "Comment content is required")
		return
	}
	if errors.Is(err, services.ErrPostNotFound) {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("Error adding comment: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}
