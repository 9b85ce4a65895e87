package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thanhng/socialhub/internal/models"
	"github.com/thanhng/socialhub/internal/services"
)

func TestFriendHandler_SendRequest(t *testing.T) {
	user := testUser()
	other := primitive.NewObjectID()

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{
			name:       "success",
			body:       `{"user_id":"` + other.Hex() + `"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid body",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request body",
		},
		{
			name:       "invalid id",
			body:       `{"user_id":"nope"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid user ID",
		},
		{
			name:       "self request",
			body:       `{"user_id":"` + other.Hex() + `"}`,
			serviceErr: services.ErrCannotFriendSelf,
			wantStatus: http.StatusBadRequest,
			wantError:  "Cannot send friend request to yourself",
		},
		{
			name:       "unknown recipient",
			body:       `{"user_id":"` + other.Hex() + `"}`,
			serviceErr: services.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "User not found",
		},
		{
			name:       "already friends",
			body:       `{"user_id":"` + other.Hex() + `"}`,
			serviceErr: services.ErrAlreadyFriends,
			wantStatus: http.StatusConflict,
			wantError:  "Already friends",
		},
		{
			name:       "duplicate request",
			body:       `{"user_id":"` + other.Hex() + `"}`,
			serviceErr: services.ErrRequestExists,
			wantStatus: http.StatusConflict,
			wantError:  "Friend request already sent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			friendService := &mockFriendService{
				SendRequestFunc: func(ctx context.Context, from, to primitive.ObjectID) (*models.FriendRequest, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &models.FriendRequest{ID: primitive.NewObjectID(), FromUser: from, ToUser: to}, nil
				},
			}
			handler := NewFriendHandler(friendService, &mockUserService{})

			req := httptest.NewRequest(http.MethodPost, "/api/friends/requests", strings.NewReader(tt.body))
			req = withUser(req, user)
			rr := httptest.NewRecorder()

			handler.SendRequest(rr, req)

			if tt.wantError != "" {
				assertErrorResponse(t, rr, tt.wantStatus, tt.wantError)
				return
			}
			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestFriendHandler_SendRequest_Unauthenticated(t *testing.T) {
	handler := NewFriendHandler(&mockFriendService{}, &mockUserService{})

	req := httptest.NewRequest(http.MethodPost, "/api/friends/requests", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	handler.SendRequest(rr, req)

	assertErrorResponse(t, rr, http.StatusUnauthorized, "Authentication required")
}

func TestFriendHandler_AcceptRequest(t *testing.T) {
	user := testUser()
	requestID := primitive.NewObjectID()

	t.Run("success", func(t *testing.T) {
		friendService := &mockFriendService{
			AcceptFunc: func(ctx context.Context, u, id primitive.ObjectID) (*models.FriendRequest, error) {
				if u != user.ID || id != requestID {
					t.Errorf("Accept called with %s/%s", u.Hex(), id.Hex())
				}
				return &models.FriendRequest{ID: id, Status: models.RequestStatusAccepted}, nil
			},
		}
		handler := NewFriendHandler(friendService, &mockUserService{})

		req := httptest.NewRequest(http.MethodPost, "/api/friends/requests/"+requestID.Hex()+"/accept", nil)
		req.SetPathValue("id", requestID.Hex())
		req = withUser(req, user)
		rr := httptest.NewRecorder()

		handler.AcceptRequest(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}
	})

	t.Run("already accepted", func(t *testing.T) {
		friendService := &mockFriendService{
			AcceptFunc: func(ctx context.Context, u, id primitive.ObjectID) (*models.FriendRequest, error) {
				return nil, services.ErrRequestNotFound
			},
		}
		handler := NewFriendHandler(friendService, &mockUserService{})

		req := httptest.NewRequest(http.MethodPost, "/api/friends/requests/"+requestID.Hex()+"/accept", nil)
		req.SetPathValue("id", requestID.Hex())
		req = withUser(req, user)
		rr := httptest.NewRecorder()

		handler.AcceptRequest(rr, req)

		assertErrorResponse(t, rr, http.StatusNotFound, "Friend request not found")
	})

	t.Run("invalid id", func(t *testing.T) {
		handler := NewFriendHandler(&mockFriendService{}, &mockUserService{})

		req := httptest.NewRequest(http.MethodPost, "/api/friends/requests/nope/accept", nil)
		req.SetPathValue("id", "nope")
		req = withUser(req, user)
		rr := httptest.NewRecorder()

		handler.AcceptRequest(rr, req)

		assertErrorResponse(t, rr, http.StatusBadRequest, "Invalid request ID")
	})
}

func TestFriendHandler_Status(t *testing.T) {
	user := testUser()
	other := primitive.NewObjectID()

	friendService := &mockFriendService{
		StatusFunc: func(ctx context.Context, u, o primitive.ObjectID) (models.FriendshipStatus, error) {
			return models.FriendshipStatus{IsFriend: true}, nil
		},
	}
	handler := NewFriendHandler(friendService, &mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/friends/status/"+other.Hex(), nil)
	req.SetPathValue("id", other.Hex())
	req = withUser(req, user)
	rr := httptest.NewRecorder()

	handler.Status(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var status models.FriendshipStatus
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !status.IsFriend || status.RequestSent {
		t.Errorf("status = %+v, want isFriend only", status)
	}
}

func TestFriendHandler_ListRequests(t *testing.T) {
	user := testUser()

	friendService := &mockFriendService{
		ListIncomingFunc: func(ctx context.Context, u primitive.ObjectID) ([]models.IncomingRequest, error) {
			return []models.IncomingRequest{{ID: primitive.NewObjectID().Hex(), From: models.Profile{Name: "Bob"}}}, nil
		},
	}
	handler := NewFriendHandler(friendService, &mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/friends/requests", nil)
	req = withUser(req, user)
	rr := httptest.NewRecorder()

	handler.ListRequests(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp RequestListResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Requests) != 1 || resp.Requests[0].From.Name != "Bob" {
		t.Errorf("requests = %+v", resp.Requests)
	}
}

func TestFriendHandler_Reconcile(t *testing.T) {
	user := testUser()

	friendService := &mockFriendService{
		ReconcileFunc: func(ctx context.Context) (int, error) {
			return 3, nil
		},
	}
	handler := NewFriendHandler(friendService, &mockUserService{})

	req := httptest.NewRequest(http.MethodPost, "/api/friends/reconcile", nil)
	req = withUser(req, user)
	rr := httptest.NewRecorder()

	handler.Reconcile(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp ReconcileResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Repaired != 3 {
		t.Errorf("repaired = %d, want 3", resp.Repaired)
	}
}
