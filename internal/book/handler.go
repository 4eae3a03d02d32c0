package book

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/redmonkez12/bookstore-api/internal/httputil"
	"github.com/redmonkez12/bookstore-api/internal/logging"
)

// Handler contains HTTP handlers for catalog endpoints
type Handler struct {
	service      *Service
	isProduction bool
}

func NewHandler(service *Service, isProduction bool) *Handler {
	return &Handler{service: service, isProduction: isProduction}
}

// List returns every book
// @Summary      List books
// @Description  Return the whole catalog ordered by id
// @Tags         books
// @Produce      json
// @Success      200 {array} Book
// @Failure      500 {object} httputil.ErrorResponse
// @Router       /api/books [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListAll(r.Context())
	if err != nil {
		h.internalError(w, r, "failed to list books", err)
		return
	}

	httputil.RespondJSON(w, books, http.StatusOK)
}

// Get returns a single book
// @Summary      Get book
// @Description  Return a book by its id
// @Tags         books
// @Produce      json
// @Param        id path int true "Book ID"
// @Success      200 {object} Book
// @Failure      404 {object} httputil.ErrorResponse "Book not found"
// @Router       /api/books/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondNotFound(w)
		return
	}

	book, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondNotFound(w)
			return
		}
		h.internalError(w, r, "failed to get book", err)
		return
	}

	httputil.RespondJSON(w, book, http.StatusOK)
}

// Search finds books by title or author
// @Summary      Search books
// @Description  Case-insensitive substring match on title or author
// @Tags         books
// @Produce      json
// @Param        q query string true "Search text"
// @Success      200 {array} Book
// @Failure      400 {object} httputil.ErrorResponse "Missing query"
// @Router       /api/books/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		query = r.URL.Query().Get("query")
	}

	books, err := h.service.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeQueryRequired, http.StatusBadRequest)
			return
		}
		h.internalError(w, r, "failed to search books", err)
		return
	}

	httputil.RespondJSON(w, books, http.StatusOK)
}

// TopRated returns the highest rated books
// @Summary      Top rated books
// @Description  Books ordered by rating (highest first), ties broken by ascending id, capped at CATALOG_TOP_RATED_LIMIT (default 10)
// @Tags         books
// @Produce      json
// @Success      200 {array} Book
// @Router       /api/books/top [get]
func (h *Handler) TopRated(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.TopRated(r.Context())
	if err != nil {
		h.internalError(w, r, "failed to get top rated books", err)
		return
	}

	httputil.RespondJSON(w, books, http.StatusOK)
}

// Create adds a book to the catalog
// @Summary      Create book
// @Description  Add a book to the catalog (admin only)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateInput true "Book"
// @Success      201 {object} Book
// @Failure      400 {object} httputil.ErrorResponse "Invalid book"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      403 {object} httputil.ErrorResponse "Forbidden"
// @Router       /api/admin/books [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req CreateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid create book request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidBook) {
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidBook, http.StatusBadRequest)
			return
		}
		h.internalError(w, r, "failed to create book", err)
		return
	}

	logger.Info("book created", "book_id", created.ID)
	httputil.RespondJSON(w, created, http.StatusCreated)
}

// Delete removes a book from the catalog
// @Summary      Delete book
// @Description  Remove a book from the catalog (admin only)
// @Tags         admin
// @Security     BearerAuth
// @Param        id path int true "Book ID"
// @Success      204
// @Failure      404 {object} httputil.ErrorResponse "Book not found"
// @Router       /api/admin/books/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, ok := parseID(r)
	if !ok {
		respondNotFound(w)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respondNotFound(w)
			return
		}
		h.internalError(w, r, "failed to delete book", err)
		return
	}

	logger.Info("book deleted", "book_id", id)
	httputil.RespondNoContent(w)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logging.GetLoggerFromContext(r.Context()).Error(msg, "error", err.Error())
	httputil.RespondInternalError(w, err, !h.isProduction)
}

// parseID reads the {id} path parameter; anything that is not a positive integer cannot name a book
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func respondNotFound(w http.ResponseWriter) {
	httputil.RespondErrorWithCode(w, ErrNotFound.Error(), httputil.CodeBookNotFound, http.StatusNotFound)
}
