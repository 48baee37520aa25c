package handler

import (
	"net/http"

	"inkwell-server/internal/middleware"
	"inkwell-server/internal/service"
	"inkwell-server/pkg/response"

	"github.com/gorilla/mux"
)

type VersionHandler struct {
	service *service.VersionService
}

func NewVersionHandler(service *service.VersionService) *VersionHandler {
	return &VersionHandler{service: service}
}

func (h *VersionHandler) Save(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	version, err := h.service.SaveSnapshot(middleware.GetUserID(r), noteID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, version)
}

func (h *VersionHandler) List(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	versions, err := h.service.List(middleware.GetUserID(r), noteID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, versions)
}

func (h *VersionHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	version, err := h.service.Get(middleware.GetUserID(r), vars["id"], vars["versionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, version)
}

func (h *VersionHandler) Restore(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	note, err := h.service.Restore(middleware.GetUserID(r), vars["id"], vars["versionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, note)
}
