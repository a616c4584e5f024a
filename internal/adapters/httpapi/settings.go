package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/app"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/httpjson"
	"github.com/go-chi/chi/v5"
)

type SettingsHandler struct {
	settings *app.SettingsService
	// onUpdated applique les réglages à chaud (gate, limiteur de prefetch).
	onUpdated func(domain.Settings)
}

func NewSettingsHandler(settings *app.SettingsService, onUpdated func(domain.Settings)) *SettingsHandler {
	return &SettingsHandler{settings: settings, onUpdated: onUpdated}
}

func (h *SettingsHandler) Routes(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.get)
		r.Put("/", h.put)
	})
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, settings)
}

func (h *SettingsHandler) put(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	updated, err := h.settings.Put(r.Context(), settings)
	if err != nil {
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if h.onUpdated != nil {
		h.onUpdated(updated)
	}
	httpjson.Write(w, http.StatusOK, updated)
}
