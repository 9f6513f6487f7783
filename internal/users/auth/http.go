package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/olekker/ratebase/internal/platform/request"
	"github.com/olekker/ratebase/internal/platform/respond"
)

// TokenResponse carries the issued JWT.
type TokenResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the auth router. Both endpoints are public.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/token", handler.issueToken)

	return router
}

func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input SignupInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Signup(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The pair is echoed back, never the code: that only travels by mail.
	respond.OK(writer, input)
}

func (handler *Handler) issueToken(writer http.ResponseWriter, request *http.Request) {
	var input TokenInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.service.IssueToken(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, TokenResponse{Token: token})
}
