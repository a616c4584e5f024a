package ports

import (
	"context"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
)

type ListRepository interface {
	Save(ctx context.Context, list domain.AnimeList) (domain.AnimeList, error)
	Get(ctx context.Context, id string) (domain.AnimeList, error)
	// Latest renvoie le dernier export sauvegardé (ErrNotFound si aucun).
	Latest(ctx context.Context) (domain.AnimeList, error)
	List(ctx context.Context, limit int) ([]domain.AnimeList, error)
	Delete(ctx context.Context, id string) error
}

type SettingsRepository interface {
	Get(ctx context.Context) (domain.Settings, error)
	Put(ctx context.Context, settings domain.Settings) (domain.Settings, error)
}
