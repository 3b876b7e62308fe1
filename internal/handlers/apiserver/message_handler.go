package apiserver

import (
	"encoding/json"
	"net/http"

	"github.com/puscasale/MAP-SocialNetwork/internal/middleware"
	"github.com/puscasale/MAP-SocialNetwork/internal/services"
)

// MessageHandler handles direct-message requests.
type MessageHandler struct {
	service services.SocialService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service services.SocialService) *MessageHandler {
	return &MessageHandler{service: service}
}

// SendMessagePayload is the body for POST /api/v1/messages.
type SendMessagePayload struct {
	RecipientID uint   `json:"recipientId"`
	Body        string `json:"body"`
}

// Send appends a message from the caller to the recipient.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "missing user identity", http.StatusUnauthorized)
		return
	}
	var payload SendMessagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	message, err := h.service.SendMessage(r.Context(), callerID, payload.RecipientID, payload.Body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, message)
}

// Conversation handles GET /api/v1/messages/{userID}: the full exchange
// between the caller and the given user, oldest first.
func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "missing user identity", http.StatusUnauthorized)
		return
	}
	otherID, ok := parseUserIDVar(w, r, "userID")
	if !ok {
		return
	}
	messages, err := h.service.GetMessagesBetween(r.Context(), callerID, otherID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, messages)
}
