package handler

import (
	"net/http"

	"inkwell-server/internal/middleware"
	"inkwell-server/internal/service"
	"inkwell-server/pkg/response"

	"github.com/gorilla/mux"
)

type ShareHandler struct {
	service *service.ShareService
}

func NewShareHandler(service *service.ShareService) *ShareHandler {
	return &ShareHandler{service: service}
}

// Toggle flips sharing on the owner's note, minting or revoking its token.
func (h *ShareHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	note, err := h.service.Toggle(middleware.GetUserID(r), noteID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, note)
}

// Resolve serves a shared note to anonymous readers. No auth middleware
// runs on this route.
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	note, err := h.service.Resolve(token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, note)
}
