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

type NoteHandler struct {
	service  *service.NoteService
	validate *validator.Validate
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	note, err := h.service.Create(middleware.GetUserID(r), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, note)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &domain.ListNotesFilter{
		FolderID: q.Get("folder"),
		Search:   q.Get("search"),
		Trashed:  q.Get("trashed") == "true",
	}

	notes, err := h.service.List(middleware.GetUserID(r), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	note, err := h.service.Get(middleware.GetUserID(r), noteID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	note, err := h.service.Update(middleware.GetUserID(r), noteID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Trash(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	note, err := h.service.Trash(middleware.GetUserID(r), noteID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Restore(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	note, err := h.service.RestoreFromTrash(middleware.GetUserID(r), noteID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	if err := h.service.DeletePermanently(middleware.GetUserID(r), noteID); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Message(w, "Note permanently deleted")
}
