package ports

import (
	"context"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
)

// MetadataResolver est le service externe de métadonnées (Jikan en prod).
// Toute erreur est transitoire : l'entrée reste absente du cache et pourra
// être retentée à la prochaine demande.
type MetadataResolver interface {
	Resolve(ctx context.Context, malID int) (domain.AnimeMetadata, error)
}
