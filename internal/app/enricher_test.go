package app

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
	"github.com/rs/zerolog"
)

// countingResolver compte les appels sortants par identifiant.
type countingResolver struct {
	mu    sync.Mutex
	calls map[int]int
	errs  map[int]error
	delay time.Duration
}

func newCountingResolver() *countingResolver {
	return &countingResolver{calls: map[int]int{}, errs: map[int]error{}}
}

func (r *countingResolver) Resolve(ctx context.Context, malID int) (domain.AnimeMetadata, error) {
	r.mu.Lock()
	r.calls[malID]++
	err := r.errs[malID]
	r.mu.Unlock()

	if r.delay > 0 {
		select {
		case <-ctx.Done():
			return domain.AnimeMetadata{}, ctx.Err()
		case <-time.After(r.delay):
		}
	}
	if err != nil {
		return domain.AnimeMetadata{}, err
	}
	return domain.AnimeMetadata{MalID: malID, Title: "anime " + strconv.Itoa(malID)}, nil
}

func (r *countingResolver) count(malID int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[malID]
}

func newTestEnricher(resolver *countingResolver) *Enricher {
	return NewEnricher(zerolog.Nop(), NewFetchGate(0), resolver)
}

func TestEnricher_ConcurrentResolvesCollapseToOneCall(t *testing.T) {
	resolver := newCountingResolver()
	resolver.delay = 30 * time.Millisecond
	e := newTestEnricher(resolver)
	ctx := context.Background()

	const callers = 8
	var wg sync.WaitGroup
	results := make([]domain.AnimeMetadata, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = e.Resolve(ctx, "42")
		}(i)
	}
	wg.Wait()

	if got := resolver.count(42); got != 1 {
		t.Fatalf("outbound calls: want 1, got %d", got)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if results[i].MalID != 42 {
			t.Fatalf("caller %d: got %+v", i, results[i])
		}
	}
}

func TestEnricher_FailurePropagatesToJoinersAndIsRetryable(t *testing.T) {
	resolver := newCountingResolver()
	resolver.delay = 30 * time.Millisecond
	resolver.errs[7] = errors.New("boom")
	e := newTestEnricher(resolver)
	ctx := context.Background()

	const callers = 4
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.Resolve(ctx, "7")
		}(i)
	}
	wg.Wait()

	if got := resolver.count(7); got != 1 {
		t.Fatalf("outbound calls: want 1, got %d", got)
	}
	for i := 0; i < callers; i++ {
		if errs[i] == nil {
			t.Fatalf("caller %d: expected error", i)
		}
	}
	if _, ok := e.Cache().Get("7"); ok {
		t.Fatalf("failed resolve must not populate the cache")
	}

	// L'échec laisse la clé absente : une nouvelle demande retente.
	resolver.mu.Lock()
	delete(resolver.errs, 7)
	resolver.mu.Unlock()

	meta, err := e.Resolve(ctx, "7")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if meta.MalID != 7 {
		t.Fatalf("retry: got %+v", meta)
	}
	if got := resolver.count(7); got != 2 {
		t.Fatalf("outbound calls after retry: want 2, got %d", got)
	}
}

func TestEnricher_CacheHitSkipsResolver(t *testing.T) {
	resolver := newCountingResolver()
	e := newTestEnricher(resolver)
	ctx := context.Background()

	if _, err := e.Resolve(ctx, "3"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := e.Resolve(ctx, "3"); err != nil {
		t.Fatalf("Resolve(cached): %v", err)
	}
	if got := resolver.count(3); got != 1 {
		t.Fatalf("outbound calls: want 1, got %d", got)
	}
}

func TestEnricher_BadIdentifierNeverReachesResolver(t *testing.T) {
	resolver := newCountingResolver()
	e := newTestEnricher(resolver)

	for _, id := range []string{"", "abc", "12x", "-1", "0"} {
		_, err := e.Resolve(context.Background(), id)
		if !errors.Is(err, ErrBadIdentifier) {
			t.Fatalf("id %q: want ErrBadIdentifier, got %v", id, err)
		}
	}

	resolver.mu.Lock()
	total := len(resolver.calls)
	resolver.mu.Unlock()
	if total != 0 {
		t.Fatalf("resolver should never be called for bad ids, got %d calls", total)
	}
}
