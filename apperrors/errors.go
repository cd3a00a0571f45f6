// Package apperrors defines the error taxonomy shared by the report
// service, the stores and the HTTP layer. Errors are sentinels so
// callers match them with errors.Is regardless of wrapping.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	ErrValidation         = errors.New("invalid input")
	ErrUnauthorized       = errors.New("invalid admin password")
	ErrReportNotFound     = errors.New("report not found")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrStorageUnavailable = errors.New("object storage is not available")
	ErrPayloadTooLarge    = errors.New("payload too large")
)

// HTTPStatus maps a service error to the response status code.
// Unrecognized errors are persistence or programming failures and map
// to 500; handlers must not leak their details to the client.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrReportNotFound), errors.Is(err, ErrPhotoNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
