package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/app"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/httpjson"
	"github.com/go-chi/chi/v5"
)

// maxUploadBytes borne le corps d'un upload d'export (les exports MAL font
// quelques centaines de Ko au pire).
const maxUploadBytes = 8 << 20

type ListsHandler struct {
	lists *app.ListService
}

func NewListsHandler(lists *app.ListService) *ListsHandler {
	return &ListsHandler{lists: lists}
}

func (h *ListsHandler) Routes(r chi.Router) {
	r.Route("/lists", func(r chi.Router) {
		r.Post("/", h.upload)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Post("/{id}/load", h.load)
		r.Delete("/{id}", h.delete)
	})
}

type uploadResponse struct {
	List    app.ListDTO     `json:"list"`
	Session app.SessionView `json:"session"`
}

// upload accepte l'export XML brut en corps de requête ; le nom de liste
// optionnel passe par ?name=.
func (h *ListsHandler) upload(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	list, view, err := h.lists.Upload(r.Context(), r.URL.Query().Get("name"), raw)
	if err != nil {
		if app.IsParseError(err) || errors.Is(err, app.ErrEmptyList) {
			// Export illisible ou vide : récupérable, on invite à re-uploader.
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Write(w, http.StatusCreated, uploadResponse{List: list, Session: view})
}

func (h *ListsHandler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	lists, err := h.lists.List(r.Context(), limit)
	if err != nil {
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, lists)
}

func (h *ListsHandler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	list, err := h.lists.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, "not found")
			return
		}
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

func (h *ListsHandler) load(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.lists.LoadSaved(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNotFound):
			httpjson.WriteError(w, http.StatusNotFound, "not found")
		case errors.Is(err, app.ErrEmptyList):
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	httpjson.Write(w, http.StatusOK, view)
}

func (h *ListsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.lists.Delete(r.Context(), id); err != nil {
		if errors.Is(err, app.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, "not found")
			return
		}
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}
