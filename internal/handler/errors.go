package handler

import (
	"errors"
	"net/http"

	"inkwell-server/internal/service"
	"inkwell-server/pkg/response"
)

// writeServiceError maps service sentinels onto the API's status codes.
// Anything unrecognized is an internal error and is not echoed verbatim.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoteNotFound),
		errors.Is(err, service.ErrVersionNotFound),
		errors.Is(err, service.ErrFolderNotFound),
		errors.Is(err, service.ErrSharedNoteNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		response.BadRequest(w, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		response.Unauthorized(w, err.Error())
	default:
		response.InternalError(w, "Something went wrong")
	}
}
