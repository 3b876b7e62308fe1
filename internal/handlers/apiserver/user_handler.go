package apiserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/puscasale/MAP-SocialNetwork/internal/middleware"
	"github.com/puscasale/MAP-SocialNetwork/internal/models"
	"github.com/puscasale/MAP-SocialNetwork/internal/services"
)

// UserHandler handles user profile and directory requests.
type UserHandler struct {
	service services.SocialService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.SocialService) *UserHandler {
	return &UserHandler{service: service}
}

// GetUser handles GET /users/{userID}, the public profile lookup.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserIDVar(w, r, "userID")
	if !ok {
		return
	}
	user, err := h.service.FindUserByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, user.BasicInfo())
}

// UpdateUserRequest is the body for PUT /api/v1/users/me.
type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// UpdateMe handles PUT /api/v1/users/me: the caller updates their own
// profile.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "missing user identity", http.StatusUnauthorized)
		return
	}
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
	user.ID = callerID

	updated, err := h.service.UpdateUser(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, updated.BasicInfo())
}

// DeleteMe handles DELETE /api/v1/users/me: account removal, dissolving
// every friendship of the caller.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "missing user identity", http.StatusUnauthorized)
		return
	}
	if err := h.service.RemoveUser(r.Context(), callerID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "account removed"})
}

// ListUsers handles GET /api/v1/users?size=&page=.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePageable(w, r)
	if !ok {
		return
	}
	page, err := h.service.ListUsers(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	items := make([]*models.UserBasicInfo, len(page.Items))
	for i := range page.Items {
		items[i] = page.Items[i].BasicInfo()
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"items": items, "total": page.Total})
}

// SearchUsers handles GET /api/v1/users/search?firstName=&lastName=&email=.
// Either an email or a first+last name pair selects the lookup.
func (h *UserHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		user *models.User
		err  error
	)
	if email := q.Get("email"); email != "" {
		user, err = h.service.FindUserByEmail(r.Context(), email)
	} else if q.Get("firstName") != "" || q.Get("lastName") != "" {
		user, err = h.service.FindUserByName(r.Context(), q.Get("firstName"), q.Get("lastName"))
	} else {
		writeJSONError(w, "provide email or firstName+lastName", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if user == nil {
		writeJSONError(w, "no matching user", http.StatusNotFound)
		return
	}
	writeJSONResponse(w, http.StatusOK, user.BasicInfo())
}

// parseUserIDVar extracts a numeric path variable, writing a 400 on
// malformed input.
func parseUserIDVar(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		writeJSONError(w, "missing "+name, http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		writeJSONError(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}
