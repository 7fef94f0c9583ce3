package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Errors any    `json:"errors,omitempty"`
}

// ResponseJSON writes payload as JSON with the given status code
func ResponseJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusOK, data)
}

// ------------- Error responses -------------

func ResponseError(w http.ResponseWriter, code int, detail string, errors any) {
	ResponseJSON(w, code, ErrorResponse{Detail: detail, Errors: errors})
}

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, detail string, errors any) {
	ResponseError(w, http.StatusBadRequest, detail, errors)
}

// returns 401 Unauthorized with a bearer challenge
func ResponseUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	ResponseError(w, http.StatusUnauthorized, detail, nil)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, detail string) {
	ResponseError(w, http.StatusNotFound, detail, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, detail string) {
	ResponseError(w, http.StatusInternalServerError, detail, nil)
}

// returns 503 Service Unavailable
func ResponseUnavailable(w http.ResponseWriter, detail string) {
	ResponseError(w, http.StatusServiceUnavailable, detail, nil)
}
