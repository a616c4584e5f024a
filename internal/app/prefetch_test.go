package app

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
	"github.com/rs/zerolog"
)

var errTest = errors.New("boom")

func testEntries(ids ...string) []domain.ListEntry {
	out := make([]domain.ListEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.ListEntry{ID: id, Title: "titre " + id})
	}
	return out
}

func TestPrefetcher_WarmsWindowAfterCursor(t *testing.T) {
	resolver := newCountingResolver()
	e := newTestEnricher(resolver)
	p := NewPrefetcher(context.Background(), zerolog.Nop(), NewDynamicLimiter(3), 3)

	entries := testEntries("1", "2", "3", "4", "5", "6")
	p.Warm(e, entries, 0)
	p.Close()

	// Fenêtre = positions 1..3, donc les ids 2, 3, 4. Ni l'entrée courante
	// ni les positions au-delà de la fenêtre.
	for _, id := range []int{2, 3, 4} {
		if got := resolver.count(id); got != 1 {
			t.Fatalf("id %d: want 1 call, got %d", id, got)
		}
	}
	for _, id := range []int{1, 5, 6} {
		if got := resolver.count(id); got != 0 {
			t.Fatalf("id %d: want 0 calls, got %d", id, got)
		}
	}
}

func TestPrefetcher_WarmIsIdempotent(t *testing.T) {
	resolver := newCountingResolver()
	e := newTestEnricher(resolver)
	p := NewPrefetcher(context.Background(), zerolog.Nop(), NewDynamicLimiter(3), 3)

	entries := testEntries("1", "2", "3", "4")
	p.Warm(e, entries, 0)
	p.Close()
	p.Warm(e, entries, 0)
	p.Close()

	for _, id := range []int{2, 3, 4} {
		if got := resolver.count(id); got != 1 {
			t.Fatalf("id %d: want 1 call after double warm, got %d", id, got)
		}
	}
}

func TestPrefetcher_SkipsCachedEntries(t *testing.T) {
	resolver := newCountingResolver()
	e := newTestEnricher(resolver)
	e.Cache().Put("3", domain.AnimeMetadata{MalID: 3, Title: "déjà là"})
	p := NewPrefetcher(context.Background(), zerolog.Nop(), NewDynamicLimiter(3), 3)

	p.Warm(e, testEntries("1", "2", "3", "4"), 0)
	p.Close()

	if got := resolver.count(3); got != 0 {
		t.Fatalf("cached id must be skipped, got %d calls", got)
	}
	if got := resolver.count(2); got != 1 {
		t.Fatalf("id 2: want 1 call, got %d", got)
	}
}

func TestPrefetcher_SkipsNonNumericIDsWithoutConsumingSlots(t *testing.T) {
	resolver := newCountingResolver()
	e := newTestEnricher(resolver)
	p := NewPrefetcher(context.Background(), zerolog.Nop(), NewDynamicLimiter(3), 3)

	p.Warm(e, testEntries("1", "pas-un-id", "3", "4"), 0)
	p.Close()

	// L'id invalide est sauté ; les autres slots de la fenêtre partent
	// quand même.
	for _, id := range []int{3, 4} {
		if got := resolver.count(id); got != 1 {
			t.Fatalf("id %d: want 1 call, got %d", id, got)
		}
	}
	resolver.mu.Lock()
	total := 0
	for _, n := range resolver.calls {
		total += n
	}
	resolver.mu.Unlock()
	if total != 2 {
		t.Fatalf("want 2 outbound calls, got %d", total)
	}
}

func TestPrefetcher_FailuresAreIsolatedPerSlot(t *testing.T) {
	resolver := newCountingResolver()
	resolver.errs[3] = errTest
	e := newTestEnricher(resolver)
	p := NewPrefetcher(context.Background(), zerolog.Nop(), NewDynamicLimiter(3), 3)

	p.Warm(e, testEntries("1", "2", "3", "4"), 0)
	p.Close()

	// L'échec du slot 3 n'empêche pas 2 et 4 d'aboutir.
	for _, id := range []int{2, 4} {
		if _, ok := e.Cache().Get(strconv.Itoa(id)); !ok {
			t.Fatalf("id %d should be cached", id)
		}
	}
	if _, ok := e.Cache().Get("3"); ok {
		t.Fatalf("failed slot must stay absent from the cache")
	}
}
