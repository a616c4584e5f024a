package app

import (
	"context"
	"sync"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
)

// InflightCall est le handle rendu aux appelants qui rejoignent une
// résolution déjà partie. Wait rend le résultat du propriétaire, échec
// compris.
type InflightCall struct {
	done chan struct{}
	meta domain.AnimeMetadata
	err  error
}

func (c *InflightCall) Wait(ctx context.Context) (domain.AnimeMetadata, error) {
	select {
	case <-ctx.Done():
		return domain.AnimeMetadata{}, ctx.Err()
	case <-c.done:
		return c.meta, c.err
	}
}

// InflightLedger garantit au plus un appel Jikan en vol par identifiant,
// quel que soit le nombre de consommateurs (premier plan + préchargement).
//
// Le pattern est volontairement simple et ne dépend pas de packages
// externes, comme le limiteur.
type InflightLedger struct {
	mu    sync.Mutex
	cache *MetadataCache
	calls map[string]*InflightCall
}

func NewInflightLedger(cache *MetadataCache) *InflightLedger {
	return &InflightLedger{cache: cache, calls: make(map[string]*InflightCall)}
}

// BeginOrJoin rend owner=true au premier appelant pour un id donné ; il lui
// revient de faire l'appel externe puis d'appeler Complete. Les suivants
// reçoivent owner=false et attendent via call.Wait.
func (l *InflightLedger) BeginOrJoin(id string) (owner bool, call *InflightCall) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.calls[id]; ok {
		return false, existing
	}
	c := &InflightCall{done: make(chan struct{})}
	l.calls[id] = c
	return true, c
}

// Complete publie le résultat à tous les appelants joints, écrit le cache
// en cas de succès, puis retire la clé pour qu'un futur miss puisse
// retenter. L'écriture cache précède le retrait : entre les deux, une
// nouvelle demande voit soit le cache, soit l'appel en vol — jamais ni
// l'un ni l'autre.
func (l *InflightLedger) Complete(id string, meta domain.AnimeMetadata, err error) {
	l.mu.Lock()
	c, ok := l.calls[id]
	if !ok {
		l.mu.Unlock()
		return
	}
	if err == nil && l.cache != nil {
		l.cache.Put(id, meta)
	}
	delete(l.calls, id)
	l.mu.Unlock()

	c.meta = meta
	c.err = err
	close(c.done)
}

func (l *InflightLedger) Has(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.calls[id]
	return ok
}
