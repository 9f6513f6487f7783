package comment

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

// Routes returns the comment router, mounted under a review. Reads are
// public; writes require authentication here and pass an ownership check in
// the service once the comment's author is known.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequirePolicy(sec.AuthorModeratorAdminOrReadOnly))

	router.Get("/", handler.listComments)
	router.Post("/", handler.createComment)
	router.Get("/{commentID}", handler.getComment)
	router.Patch("/{commentID}", handler.updateComment)
	router.Delete("/{commentID}", handler.deleteComment)

	return router
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	paginationParams := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(request.Context(), titleID, reviewID, paginationParams.Limit, paginationParams.Offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.GetComment(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), titleID, reviewID, claims, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.UpdateComment(request.Context(), titleID, reviewID, commentID, claims, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), titleID, reviewID, commentID, claims); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// parentIDs extracts the title and review identifiers from the nested route.
func parentIDs(request *http.Request) (int64, int64, error) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err := requestutil.IntParam(request, "reviewID")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

// pathIDs extracts all three identifiers from the nested route.
func pathIDs(request *http.Request) (int64, int64, int64, error) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		return 0, 0, 0, err
	}
	commentID, err := requestutil.IntParam(request, "commentID")
	if err != nil {
		return 0, 0, 0, err
	}
	return titleID, reviewID, commentID, nil
}
