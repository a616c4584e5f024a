package app

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
	"github.com/rs/zerolog"
)

// Prefetcher réchauffe une fenêtre bornée d'entrées à venir. Chaque slot
// part en goroutine détachée : le curseur peut avancer avant la fin d'un
// préchargement, le résultat atterrit quand même dans le cache (append-only,
// donc au pire du travail perdu, jamais d'état corrompu). Pas d'annulation
// ciblée ; Close coupe tout via le contexte parent.
//
// SetCount côté pool de workers du projet d'origine devient ici un
// DynamicLimiter : plafond de résolutions de fond simultanées, ajustable
// à chaud.
type Prefetcher struct {
	parent   context.Context
	logger   zerolog.Logger
	limiter  *DynamicLimiter
	window   int

	mu sync.Mutex
	wg sync.WaitGroup
}

const defaultPrefetchWindow = 3

func NewPrefetcher(parent context.Context, logger zerolog.Logger, limiter *DynamicLimiter, window int) *Prefetcher {
	if parent == nil {
		parent = context.Background()
	}
	if window <= 0 {
		window = defaultPrefetchWindow
	}
	return &Prefetcher{parent: parent, logger: logger, limiter: limiter, window: window}
}

func (p *Prefetcher) Window() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.window
}

func (p *Prefetcher) SetWindow(window int) {
	if window <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.window = window
}

// Warm émet une résolution de fond pour chaque entrée de la fenêtre
// cursor+1..cursor+window qui n'est ni en cache ni en vol. Idempotent :
// rappeler avec le même curseur ne relance que ce qui manque encore.
// Les échecs sont loggés, jamais remontés ; chaque slot a sa propre
// frontière d'échec.
func (p *Prefetcher) Warm(enricher *Enricher, entries []domain.ListEntry, cursor int) {
	if enricher == nil {
		return
	}
	window := p.Window()

	for pos := cursor + 1; pos <= cursor+window && pos < len(entries); pos++ {
		entry := entries[pos]
		if _, err := strconv.Atoi(strings.TrimSpace(entry.ID)); err != nil {
			// ID non numérique : on ne consomme ni slot ni goroutine.
			p.logger.Debug().Str("entry_id", entry.ID).Int("position", pos).Msg("prefetch skipped: bad id")
			continue
		}
		if enricher.Pending(entry.ID) {
			continue
		}

		p.wg.Add(1)
		go func(entry domain.ListEntry, pos int) {
			defer p.wg.Done()

			if p.limiter != nil {
				if err := p.limiter.Acquire(p.parent); err != nil {
					return
				}
				defer p.limiter.Release()
			}

			_, err := enricher.Resolve(p.parent, entry.ID)
			switch {
			case err == nil:
				p.logger.Debug().Str("entry_id", entry.ID).Int("position", pos).Msg("prefetched")
			case errors.Is(err, ErrBadIdentifier):
				p.logger.Debug().Str("entry_id", entry.ID).Msg("prefetch skipped: bad id")
			default:
				p.logger.Warn().Err(err).Str("entry_id", entry.ID).Int("position", pos).Msg("prefetch failed")
			}
		}(entry, pos)
	}
}

// Close attend la fin des résolutions déjà parties. L'arrêt effectif passe
// par l'annulation du contexte parent.
func (p *Prefetcher) Close() {
	p.wg.Wait()
}
