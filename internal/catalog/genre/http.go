package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olekker/ratebase/internal/platform/middleware"
	requestutil "github.com/olekker/ratebase/internal/platform/request"
	"github.com/olekker/ratebase/internal/platform/respond"
	"github.com/olekker/ratebase/internal/platform/sec"
	"github.com/olekker/ratebase/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the genre router, gated by the admin-or-read-only policy.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequirePolicy(sec.AdminOrReadOnly))

	router.Get("/", handler.listGenres)
	router.Post("/", handler.createGenre)
	router.Delete("/{slug}", handler.deleteGenre)

	return router
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Search: request.URL.Query().Get("search"),
	}

	genres, total, err := handler.service.ListGenres(request.Context(), filter, paginationParams.Limit, paginationParams.Offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input Genre
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateGenre(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.service.DeleteGenre(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
