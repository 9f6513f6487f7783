package category

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

// Routes returns the category router. The whole group runs under the
// admin-or-read-only policy: anyone may list, only admins may mutate.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequirePolicy(sec.AdminOrReadOnly))

	router.Get("/", handler.listCategories)
	router.Post("/", handler.createCategory)
	router.Delete("/{slug}", handler.deleteCategory)

	return router
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Search: request.URL.Query().Get("search"),
	}

	categories, total, err := handler.service.ListCategories(request.Context(), filter, paginationParams.Limit, paginationParams.Offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input Category
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCategory(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.service.DeleteCategory(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
