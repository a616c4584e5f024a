package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/ports"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

type SessionOptions struct {
	// Cooldown ignore les décisions pendant cette fenêtre après un swipe.
	Cooldown time.Duration
}

func DefaultSessionOptions() SessionOptions {
	return SessionOptions{Cooldown: 1000 * time.Millisecond}
}

// SessionView est la vue en lecture seule rendue à la présentation.
type SessionView struct {
	SessionID string                 `json:"sessionId"`
	ListID    string                 `json:"listId,omitempty"`
	ListName  string                 `json:"listName,omitempty"`
	Cursor    int                    `json:"cursor"`
	Total     int                    `json:"total"`
	Exhausted bool                   `json:"exhausted"`
	Entry     *domain.ListEntry      `json:"entry,omitempty"`
	Metadata  *domain.AnimeMetadata  `json:"metadata,omitempty"`
	Loading   bool                   `json:"loading"`
	Cooldown  bool                   `json:"cooldown"`
	Liked     []domain.AnimeMetadata `json:"liked"`
}

// SessionService possède l'état de session : curseur, item courant résolu,
// journal des décisions, accumulateur de likes. Le curseur ne fait
// qu'avancer. Tout est jeté en bloc au chargement d'une nouvelle liste,
// cache et ledger compris (l'Enricher est reconstruit) ; seule la porte
// Jikan survit.
type SessionService struct {
	parent   context.Context
	logger   zerolog.Logger
	gate     *FetchGate
	resolver ports.MetadataResolver
	prefetch *Prefetcher
	bus      ports.EventBus
	opts     SessionOptions

	mu            sync.Mutex
	sessionID     string
	listID        string
	listName      string
	entries       []domain.ListEntry
	enricher      *Enricher
	cursor        int
	currentMeta   *domain.AnimeMetadata
	decisions     map[string]domain.Decision
	liked         []domain.AnimeMetadata
	cooldownUntil time.Time
	// epoch invalide les publications tardives des résolutions asynchrones
	// après un reset ou un rechargement.
	epoch int
}

func NewSessionService(parent context.Context, logger zerolog.Logger, gate *FetchGate, resolver ports.MetadataResolver, prefetch *Prefetcher, bus ports.EventBus, opts SessionOptions) *SessionService {
	if parent == nil {
		parent = context.Background()
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = DefaultSessionOptions().Cooldown
	}
	return &SessionService{
		parent:   parent,
		logger:   logger,
		gate:     gate,
		resolver: resolver,
		prefetch: prefetch,
		bus:      bus,
		opts:     opts,
	}
}

// SetCooldown ajuste la fenêtre de debounce à chaud (settings).
func (s *SessionService) SetCooldown(cooldown time.Duration) {
	if cooldown <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Cooldown = cooldown
}

// Load démarre une session sur une liste : curseur à zéro, décisions et
// likes vides, Enricher neuf. Déclenche la résolution de l'entrée courante
// et une première passe de préchargement.
func (s *SessionService) Load(ctx context.Context, list domain.AnimeList) (SessionView, error) {
	if len(list.Entries) == 0 {
		return SessionView{}, ErrEmptyList
	}

	s.mu.Lock()
	s.epoch++
	s.sessionID = xid.New().String()
	s.listID = list.ID
	s.listName = list.Name
	s.entries = append([]domain.ListEntry(nil), list.Entries...)
	s.enricher = NewEnricher(s.logger.With().Str("component", "enricher").Logger(), s.gate, s.resolver)
	s.cursor = 0
	s.currentMeta = nil
	s.decisions = make(map[string]domain.Decision)
	s.liked = nil
	s.cooldownUntil = time.Time{}
	view := s.viewLocked()
	s.mu.Unlock()

	s.logger.Info().Str("session_id", view.SessionID).Str("list_id", list.ID).Int("entries", view.Total).Msg("session loaded")
	s.publish("session.loaded", view)
	s.resolveCurrent()
	s.warm()
	return view, nil
}

// Reset jette la session entière. Un futur Load repart de zéro.
func (s *SessionService) Reset() {
	s.mu.Lock()
	s.epoch++
	s.sessionID = ""
	s.listID = ""
	s.listName = ""
	s.entries = nil
	s.enricher = nil
	s.cursor = 0
	s.currentMeta = nil
	s.decisions = nil
	s.liked = nil
	s.cooldownUntil = time.Time{}
	s.mu.Unlock()

	s.logger.Info().Msg("session reset")
	s.publish("session.reset", SessionView{})
}

func (s *SessionService) View() (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enricher == nil {
		return SessionView{}, ErrNoSession
	}
	return s.viewLocked(), nil
}

func (s *SessionService) Liked() ([]domain.AnimeMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enricher == nil {
		return nil, ErrNoSession
	}
	return append([]domain.AnimeMetadata(nil), s.liked...), nil
}

// Decide accepte un swipe si la fenêtre de cooldown est passée et que
// l'entrée courante est résolue. Le curseur avance d'exactement un, ce qui
// relance résolution de premier plan et préchargement.
func (s *SessionService) Decide(ctx context.Context, decision domain.Decision) (SessionView, error) {
	s.mu.Lock()
	if s.enricher == nil {
		s.mu.Unlock()
		return SessionView{}, ErrNoSession
	}
	if s.cursor >= len(s.entries) {
		s.mu.Unlock()
		return SessionView{}, ErrExhausted
	}
	now := time.Now()
	if now.Before(s.cooldownUntil) {
		s.mu.Unlock()
		return SessionView{}, ErrCooldown
	}
	if s.currentMeta == nil {
		s.mu.Unlock()
		return SessionView{}, ErrNotResolved
	}

	entry := s.entries[s.cursor]
	if _, seen := s.decisions[entry.ID]; !seen {
		s.decisions[entry.ID] = decision
		if decision == domain.DecisionLiked {
			s.liked = append(s.liked, *s.currentMeta)
		}
	}
	s.cooldownUntil = now.Add(s.opts.Cooldown)
	s.cursor++
	s.currentMeta = nil
	exhausted := s.cursor >= len(s.entries)
	view := s.viewLocked()
	s.mu.Unlock()

	s.logger.Info().Str("entry_id", entry.ID).Str("decision", string(decision)).Int("cursor", view.Cursor).Msg("decision recorded")
	s.publish("session.decided", view)
	if exhausted {
		s.publish("session.exhausted", view)
		return view, nil
	}
	s.resolveCurrent()
	s.warm()
	return view, nil
}

// Decisions rend une copie du journal id → décision.
func (s *SessionService) Decisions() map[string]domain.Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.Decision, len(s.decisions))
	for id, d := range s.decisions {
		out[id] = d
	}
	return out
}

// resolveCurrent lance la résolution de premier plan de l'entrée courante.
// Asynchrone : la vue montre "loading" jusqu'à la publication. Un résultat
// arrivant après que le curseur a bougé (ou après un reset) est abandonné —
// il est de toute façon déjà dans le cache.
func (s *SessionService) resolveCurrent() {
	s.mu.Lock()
	if s.enricher == nil || s.cursor >= len(s.entries) {
		s.mu.Unlock()
		return
	}
	entry := s.entries[s.cursor]
	cursor, epoch, enricher := s.cursor, s.epoch, s.enricher

	if meta, ok := enricher.Cache().Get(entry.ID); ok {
		s.currentMeta = &meta
		view := s.viewLocked()
		s.mu.Unlock()
		s.publish("session.resolved", view)
		return
	}
	s.mu.Unlock()

	go func() {
		meta, err := enricher.Resolve(s.parent, entry.ID)
		if err != nil {
			// L'entrée reste "loading" ; un nouveau GET /session retentera.
			s.logger.Warn().Err(err).Str("entry_id", entry.ID).Msg("foreground resolve failed")
			return
		}

		s.mu.Lock()
		if s.epoch != epoch || s.cursor != cursor {
			s.mu.Unlock()
			return
		}
		s.currentMeta = &meta
		view := s.viewLocked()
		s.mu.Unlock()
		s.publish("session.resolved", view)
	}()
}

// Retry relance la résolution de l'entrée courante si elle est restée en
// échec (clé absente du cache, donc retentable).
func (s *SessionService) Retry() (SessionView, error) {
	view, err := s.View()
	if err != nil {
		return SessionView{}, err
	}
	if view.Loading {
		s.resolveCurrent()
	}
	return view, nil
}

func (s *SessionService) warm() {
	s.mu.Lock()
	enricher, entries, cursor := s.enricher, s.entries, s.cursor
	s.mu.Unlock()
	if s.prefetch == nil || enricher == nil {
		return
	}
	s.prefetch.Warm(enricher, entries, cursor)
}

func (s *SessionService) viewLocked() SessionView {
	view := SessionView{
		SessionID: s.sessionID,
		ListID:    s.listID,
		ListName:  s.listName,
		Cursor:    s.cursor,
		Total:     len(s.entries),
		Cooldown:  time.Now().Before(s.cooldownUntil),
		Liked:     append([]domain.AnimeMetadata(nil), s.liked...),
	}
	if s.cursor >= len(s.entries) {
		view.Exhausted = true
		return view
	}
	entry := s.entries[s.cursor]
	view.Entry = &entry
	if s.currentMeta != nil {
		meta := *s.currentMeta
		view.Metadata = &meta
	} else {
		view.Loading = true
	}
	return view
}

func (s *SessionService) publish(topic string, view SessionView) {
	if s.bus == nil {
		return
	}
	b, err := json.Marshal(view)
	if err != nil {
		return
	}
	s.bus.Publish(topic, b)
}
