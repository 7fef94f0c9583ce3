package adaptor

import (
	"encoding/json"
	"mime"
	"net/http"

	"book-catalog/internal/dto/request"
	"book-catalog/internal/usecase"
	"book-catalog/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLogin(w, r)
	if !ok {
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.Login(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "login", "")
		return
	}

	utils.ResponseSuccess(w, response)
}

// decodeLogin accepts a JSON body or the usual username/password form fields.
func decodeLogin(w http.ResponseWriter, r *http.Request) (*request.LoginRequest, bool) {
	var req request.LoginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return nil, false
		}
		return &req, true
	}

	if err := r.ParseForm(); err != nil {
		utils.ResponseBadRequest(w, "Invalid form body", nil)
		return nil, false
	}
	req.Username = r.PostFormValue("username")
	req.Password = r.PostFormValue("password")

	return &req, true
}
