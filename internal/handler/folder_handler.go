package handler

import (
	"encoding/json"
	"net/http"

	"inkwell-server/internal/domain"
	"inkwell-server/internal/middleware"
	"inkwell-server/internal/service"
	"inkwell-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type FolderHandler struct {
	service  *service.FolderService
	validate *validator.Validate
}

func NewFolderHandler(service *service.FolderService) *FolderHandler {
	return &FolderHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	folder, err := h.service.Create(middleware.GetUserID(r), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, folder)
}

func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	folders, err := h.service.List(middleware.GetUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, folders)
}

func (h *FolderHandler) Update(w http.ResponseWriter, r *http.Request) {
	folderID := mux.Vars(r)["id"]

	var req domain.UpdateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	folder, err := h.service.Update(middleware.GetUserID(r), folderID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, folder)
}

func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	folderID := mux.Vars(r)["id"]

	if err := h.service.Delete(middleware.GetUserID(r), folderID); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Message(w, "Folder deleted")
}
