package app

import (
	"context"
	"sync"
	"time"
)

// FetchGate sérialise les départs d'appels vers Jikan : deux Acquire
// consécutifs sont espacés d'au moins MinInterval. La porte est partagée
// entre la résolution de premier plan et le préchargement, et survit aux
// resets de session (la limite côté Jikan, elle, ne se remet pas à zéro).
//
// L'ordre est FIFO par demande d'acquisition : une demande de premier plan
// peut donc patienter derrière du préchargement parti avant elle. Le
// comportement de référence ne priorise pas le premier plan ; une file
// prioritaire serait un changement d'intention, pas une correction.
type FetchGate struct {
	mu       sync.Mutex
	interval time.Duration
	nextAt   time.Time
}

func NewFetchGate(interval time.Duration) *FetchGate {
	if interval < 0 {
		interval = 0
	}
	return &FetchGate{interval: interval}
}

func (g *FetchGate) Interval() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.interval
}

// SetInterval s'applique aux créneaux réservés après l'appel.
func (g *FetchGate) SetInterval(interval time.Duration) {
	if interval < 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.interval = interval
}

// Acquire réserve le prochain créneau de départ et dort jusqu'à lui.
// Un appelant annulé par son contexte gâche son créneau ; c'est accepté
// (au pire un trou de MinInterval dans le débit sortant).
func (g *FetchGate) Acquire(ctx context.Context) error {
	g.mu.Lock()
	now := time.Now()
	start := g.nextAt
	if start.Before(now) {
		start = now
	}
	g.nextAt = start.Add(g.interval)
	g.mu.Unlock()

	wait := time.Until(start)
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
