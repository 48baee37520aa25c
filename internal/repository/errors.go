package repository

import (
	"errors"
	"net/http"

	"github.com/go-kivik/kivik/v4"
)

// ErrNotFound is returned when a document does not exist or is not visible
// to the requesting owner. Services translate it into their own sentinels.
var ErrNotFound = errors.New("document not found")

func isNotFound(err error) bool {
	return kivik.HTTPStatus(err) == http.StatusNotFound
}
