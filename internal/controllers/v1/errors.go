package v1

import (
	"errors"
	"net/http"

	"github.com/Ubiwhere/fast-pagination/internal/models"
	"github.com/Ubiwhere/fast-pagination/internal/pagination"
)

// status returns the appropriate HTTP status for an error from page
// resolution or the database.
func status(err error) int {
	var invalidPage *pagination.InvalidPageError
	if errors.As(err, &invalidPage) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}
