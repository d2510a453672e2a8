package helpers

import (
	"errors"
	"net/http"

	"auction-room/internal/biddingerrors"
	"auction-room/utils"
)

// MapErrorToHTTP maps read-side service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrNoBids):
		return http.StatusNotFound, "no bids placed yet"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
