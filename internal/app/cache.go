package app

import (
	"sync"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
)

// MetadataCache mappe un ID d'entrée (chaîne) vers ses métadonnées résolues.
// Append-only : une clé posée n'est jamais écrasée ni évincée pendant la vie
// de la session. Pas de borne de taille — la liste chargée borne déjà le
// nombre de clés possibles, une politique d'éviction n'apporterait rien.
type MetadataCache struct {
	mu      sync.Mutex
	entries map[string]domain.AnimeMetadata
}

func NewMetadataCache() *MetadataCache {
	return &MetadataCache{entries: make(map[string]domain.AnimeMetadata)}
}

// Get est une lecture pure, sans effet de bord.
func (c *MetadataCache) Get(id string) (domain.AnimeMetadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	meta, ok := c.entries[id]
	return meta, ok
}

// Put est un no-op si la clé est déjà posée.
func (c *MetadataCache) Put(id string, meta domain.AnimeMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[id]; ok {
		return
	}
	c.entries[id] = meta
}

func (c *MetadataCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
