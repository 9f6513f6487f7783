package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olekker/ratebase/internal/platform/middleware"
	requestutil "github.com/olekker/ratebase/internal/platform/request"
	"github.com/olekker/ratebase/internal/platform/respond"
	"github.com/olekker/ratebase/internal/platform/sec"
	"github.com/olekker/ratebase/pkg/pagination"
	"github.com/olekker/ratebase/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the title router, gated by the admin-or-read-only policy.
// The review router is mounted outside that policy scope: review writes are
// open to any authenticated user, not only administrators.
func (handler *Handler) Routes(reviews chi.Router) chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequirePolicy(sec.AdminOrReadOnly))
		r.Get("/", handler.listTitles)
		r.Post("/", handler.createTitle)
		r.Get("/{titleID}", handler.getTitle)
		r.Patch("/{titleID}", handler.updateTitle)
		r.Delete("/{titleID}", handler.deleteTitle)
	})

	router.Mount("/{titleID}/reviews", reviews)

	return router
}

func (handler *Handler) listTitles(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	params := request.URL.Query()

	filter := Filter{
		Name:     params.Get("name"),
		Category: params.Get("category"),
		Genre:    params.Get("genre"),
	}
	if year, ok := query.Int(params.Get("year")); ok {
		filter.Year = year
		filter.HasYear = true
	}

	titles, total, err := handler.service.ListTitles(request.Context(), filter, paginationParams.Limit, paginationParams.Offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) getTitle(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.GetTitle(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

func (handler *Handler) createTitle(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.CreateTitle(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, title)
}

func (handler *Handler) updateTitle(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.UpdateTitle(request.Context(), id, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

func (handler *Handler) deleteTitle(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTitle(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
