package apiserver

import (
	"encoding/json"
	"net/http"

	"github.com/puscasale/MAP-SocialNetwork/internal/middleware"
	"github.com/puscasale/MAP-SocialNetwork/internal/models"
	"github.com/puscasale/MAP-SocialNetwork/internal/services"
)

// FriendshipHandler handles friendship requests and the friend graph
// around the authenticated caller.
type FriendshipHandler struct {
	service services.SocialService
}

// NewFriendshipHandler creates a new FriendshipHandler.
func NewFriendshipHandler(service services.SocialService) *FriendshipHandler {
	return &FriendshipHandler{service: service}
}

// SendRequestPayload is the body for POST /api/v1/friendships/requests.
type SendRequestPayload struct {
	RecipientID uint `json:"recipientId"`
}

// SendRequest opens a pending friendship request from the caller.
func (h *FriendshipHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "missing user identity", http.StatusUnauthorized)
		return
	}
	var payload SendRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	friendship, err := h.service.CreateFriendshipRequest(r.Context(), callerID, payload.RecipientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, friendship)
}

// DecideRequestPayload is the body for POST /api/v1/friendships/requests/decide.
type DecideRequestPayload struct {
	RequesterID uint   `json:"requesterId"`
	Decision    string `json:"decision"` // "approved" or "rejected"
}

// DecideRequest lets the caller approve or reject a request addressed to
// them.
func (h *FriendshipHandler) DecideRequest(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "missing user identity", http.StatusUnauthorized)
		return
	}
	var payload DecideRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	friendship, err := h.service.ManageFriendRequest(r.Context(),
		payload.RequesterID, callerID, models.FriendshipStatus(payload.Decision))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, friendship)
}

// ListPending returns the requests awaiting the caller's decision.
func (h *FriendshipHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "missing user identity", http.StatusUnauthorized)
		return
	}
	pending, err := h.service.GetPendingRequests(r.Context(), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, pending)
}

// ListFriends returns the caller's approved friends.
func (h *FriendshipHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "missing user identity", http.StatusUnauthorized)
		return
	}
	friends, err := h.service.GetFriends(r.Context(), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	items := make([]*models.UserBasicInfo, len(friends))
	for i := range friends {
		items[i] = friends[i].BasicInfo()
	}
	writeJSONResponse(w, http.StatusOK, items)
}

// Unfriend handles DELETE /api/v1/friendships/{userID}: removes the
// friendship between the caller and the given user. Removing an absent
// friendship succeeds silently, matching the service contract.
func (h *FriendshipHandler) Unfriend(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "missing user identity", http.StatusUnauthorized)
		return
	}
	otherID, ok := parseUserIDVar(w, r, "userID")
	if !ok {
		return
	}
	if err := h.service.RemoveFriendship(r.Context(), callerID, otherID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "friendship removed"})
}

// ListAll handles GET /api/v1/friendships?size=&page=.
func (h *FriendshipHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePageable(w, r)
	if !ok {
		return
	}
	page, err := h.service.ListFriendships(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, page)
}

// ListMine handles GET /api/v1/friendships/mine?size=&page=: one page of
// the caller's approved friendships.
func (h *FriendshipHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "missing user identity", http.StatusUnauthorized)
		return
	}
	p, ok := parsePageable(w, r)
	if !ok {
		return
	}
	page, err := h.service.ListUserFriends(r.Context(), p, callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, page)
}
