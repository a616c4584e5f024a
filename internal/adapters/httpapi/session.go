package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/app"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/httpjson"
	"github.com/go-chi/chi/v5"
)

type SessionHandler struct {
	session *app.SessionService
}

func NewSessionHandler(session *app.SessionService) *SessionHandler {
	return &SessionHandler{session: session}
}

func (h *SessionHandler) Routes(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Get("/", h.view)
		r.Post("/decision", h.decide)
		r.Post("/retry", h.retry)
		r.Post("/reset", h.reset)
	})
	r.Get("/liked", h.liked)
}

func (h *SessionHandler) view(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.View()
	if err != nil {
		httpjson.WriteError(w, http.StatusNotFound, "no session loaded")
		return
	}
	httpjson.Write(w, http.StatusOK, view)
}

type decisionRequest struct {
	Decision domain.Decision `json:"decision"`
}

func (h *SessionHandler) decide(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !req.Decision.Valid() {
		httpjson.WriteError(w, http.StatusBadRequest, "decision must be liked or disliked")
		return
	}

	view, err := h.session.Decide(r.Context(), req.Decision)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNoSession):
			httpjson.WriteError(w, http.StatusNotFound, "no session loaded")
		case errors.Is(err, app.ErrExhausted):
			httpjson.WriteError(w, http.StatusConflict, "session exhausted")
		case errors.Is(err, app.ErrCooldown):
			// Décision pendant le debounce : jetée, pas d'avancement.
			httpjson.WriteError(w, http.StatusConflict, "cooldown active")
		case errors.Is(err, app.ErrNotResolved):
			httpjson.WriteError(w, http.StatusConflict, "current entry still loading")
		default:
			httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	httpjson.Write(w, http.StatusOK, view)
}

func (h *SessionHandler) retry(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.Retry()
	if err != nil {
		httpjson.WriteError(w, http.StatusNotFound, "no session loaded")
		return
	}
	httpjson.Write(w, http.StatusOK, view)
}

func (h *SessionHandler) reset(w http.ResponseWriter, r *http.Request) {
	h.session.Reset()
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *SessionHandler) liked(w http.ResponseWriter, r *http.Request) {
	liked, err := h.session.Liked()
	if err != nil {
		httpjson.WriteError(w, http.StatusNotFound, "no session loaded")
		return
	}
	if liked == nil {
		liked = []domain.AnimeMetadata{}
	}
	httpjson.Write(w, http.StatusOK, liked)
}
