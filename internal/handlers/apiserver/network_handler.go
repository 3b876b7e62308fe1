package apiserver

import (
	"net/http"

	"github.com/puscasale/MAP-SocialNetwork/internal/services"
)

// NetworkHandler exposes the social-graph analytics.
type NetworkHandler struct {
	service services.SocialService
}

// NewNetworkHandler creates a new NetworkHandler.
func NewNetworkHandler(service services.SocialService) *NetworkHandler {
	return &NetworkHandler{service: service}
}

// Communities handles GET /api/v1/network/communities: the number of
// connected components of the approved-friendship graph.
func (h *NetworkHandler) Communities(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.NumberOfCommunities(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]int{"communities": count})
}

// MostSocial handles GET /api/v1/network/most-social: the user-ID path of
// the most social community.
func (h *NetworkHandler) MostSocial(w http.ResponseWriter, r *http.Request) {
	path, err := h.service.MostSocialCommunity(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"path": path})
}
