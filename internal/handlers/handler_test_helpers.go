package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thanhng/socialhub/internal/models"
)

func assertErrorResponse(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected status %d, got %d", status, rr.Code)
	}
	if ct := rr.Result().Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected content type application/json, got %q", ct)
	}

	var response ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response.Error != message {
		t.Fatalf("expected error %q, got %q", message, response.Error)
	}
}

func testUser() *models.User {
	return &models.User{
		ID:      primitive.NewObjectID(),
		Name:    "Alice",
		Email:   "alice@example.com",
		Friends: []primitive.ObjectID{},
	}
}

// withUser attaches an authenticated user to the request.
func withUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(SetUserInContext(r.Context(), user))
}
