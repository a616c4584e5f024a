package app

import (
	"context"
	"strconv"
	"strings"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/ports"
	"github.com/rs/zerolog"
)

// Enricher est le pipeline cache → ledger → gate → Jikan.
// Construit à chaque chargement de liste : cache et ledger repartent de
// zéro avec la session, la porte (partagée) est injectée.
type Enricher struct {
	logger   zerolog.Logger
	cache    *MetadataCache
	inflight *InflightLedger
	gate     *FetchGate
	resolver ports.MetadataResolver
}

func NewEnricher(logger zerolog.Logger, gate *FetchGate, resolver ports.MetadataResolver) *Enricher {
	cache := NewMetadataCache()
	return &Enricher{
		logger:   logger,
		cache:    cache,
		inflight: NewInflightLedger(cache),
		gate:     gate,
		resolver: resolver,
	}
}

func (e *Enricher) Cache() *MetadataCache { return e.cache }

// Pending vaut vrai si l'id est déjà en cache ou en vol — le préchargement
// saute ces entrées.
func (e *Enricher) Pending(id string) bool {
	if _, ok := e.cache.Get(id); ok {
		return true
	}
	return e.inflight.Has(id)
}

// Resolve transforme l'ID d'une entrée en métadonnées complètes.
// Les demandes concurrentes pour le même id se rabattent sur un seul appel
// sortant ; tout le monde reçoit le même résultat, échec compris.
func (e *Enricher) Resolve(ctx context.Context, rawID string) (domain.AnimeMetadata, error) {
	if meta, ok := e.cache.Get(rawID); ok {
		return meta, nil
	}

	malID, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil || malID <= 0 {
		return domain.AnimeMetadata{}, ErrBadIdentifier
	}

	owner, call := e.inflight.BeginOrJoin(rawID)
	if !owner {
		return call.Wait(ctx)
	}

	// Une résolution a pu aboutir entre le miss et la prise de propriété.
	if meta, ok := e.cache.Get(rawID); ok {
		e.inflight.Complete(rawID, meta, nil)
		return meta, nil
	}

	if err := e.gate.Acquire(ctx); err != nil {
		e.inflight.Complete(rawID, domain.AnimeMetadata{}, err)
		return domain.AnimeMetadata{}, err
	}

	meta, err := e.resolver.Resolve(ctx, malID)
	if err != nil {
		e.logger.Warn().Err(err).Str("entry_id", rawID).Msg("resolve failed")
	}
	e.inflight.Complete(rawID, meta, err)
	if err != nil {
		return domain.AnimeMetadata{}, err
	}
	return meta, nil
}
