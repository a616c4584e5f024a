package app

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/ports"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

// ListService fait le lien entre les exports sauvegardés et la session :
// upload → parse → persistance → chargement, ou rechargement d'un export
// déjà en base.
type ListService struct {
	logger   zerolog.Logger
	repo     ports.ListRepository
	session  *SessionService
	settings *SettingsService
}

func NewListService(logger zerolog.Logger, repo ports.ListRepository, session *SessionService, settings *SettingsService) *ListService {
	return &ListService{logger: logger, repo: repo, session: session, settings: settings}
}

type ListDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Entries   int       `json:"entries"`
	CreatedAt time.Time `json:"createdAt"`
}

func toListDTO(l domain.AnimeList) ListDTO {
	return ListDTO{ID: l.ID, Name: l.Name, Entries: len(l.Entries), CreatedAt: l.CreatedAt}
}

// Upload parse l'export, le sauvegarde brut (pour survivre aux redémarrages)
// et démarre une session dessus.
func (s *ListService) Upload(ctx context.Context, name string, raw []byte) (ListDTO, SessionView, error) {
	entries, err := ParseMALExport(bytes.NewReader(raw))
	if err != nil {
		return ListDTO{}, SessionView{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "export " + time.Now().UTC().Format("2006-01-02 15:04")
	}

	list := domain.AnimeList{
		ID:        xid.New().String(),
		Name:      name,
		RawXML:    raw,
		Entries:   entries,
		CreatedAt: time.Now().UTC(),
	}
	saved, err := s.repo.Save(ctx, list)
	if err != nil {
		return ListDTO{}, SessionView{}, err
	}
	s.logger.Info().Str("list_id", saved.ID).Int("entries", len(saved.Entries)).Msg("list saved")

	view, err := s.loadIntoSession(ctx, saved)
	if err != nil {
		return ListDTO{}, SessionView{}, err
	}
	return toListDTO(saved), view, nil
}

// LoadSaved recharge un export déjà en base dans une session neuve.
func (s *ListService) LoadSaved(ctx context.Context, id string) (SessionView, error) {
	list, err := s.repo.Get(ctx, id)
	if err != nil {
		return SessionView{}, err
	}
	return s.loadIntoSession(ctx, list)
}

// LoadLatest recharge le dernier export sauvegardé (au boot, best-effort).
func (s *ListService) LoadLatest(ctx context.Context) (SessionView, error) {
	list, err := s.repo.Latest(ctx)
	if err != nil {
		return SessionView{}, err
	}
	return s.loadIntoSession(ctx, list)
}

func (s *ListService) List(ctx context.Context, limit int) ([]ListDTO, error) {
	lists, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]ListDTO, 0, len(lists))
	for _, l := range lists {
		out = append(out, toListDTO(l))
	}
	return out, nil
}

func (s *ListService) Get(ctx context.Context, id string) (ListDTO, error) {
	list, err := s.repo.Get(ctx, id)
	if err != nil {
		return ListDTO{}, err
	}
	return toListDTO(list), nil
}

func (s *ListService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ListService) loadIntoSession(ctx context.Context, list domain.AnimeList) (SessionView, error) {
	entries := list.Entries
	if s.settings != nil {
		if st, err := s.settings.Get(ctx); err == nil {
			entries = FilterByStatus(entries, st.StatusFilter)
		}
	}
	filtered := list
	filtered.Entries = entries
	return s.session.Load(ctx, filtered)
}
