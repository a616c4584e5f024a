package app

import (
	"context"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/ports"
)

type SettingsService struct {
	repo ports.SettingsRepository
}

func NewSettingsService(repo ports.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.repo.Get(ctx)
}

func (s *SettingsService) Put(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	// Validation légère : les valeurs hors bornes retombent sur les défauts.
	def := domain.DefaultSettings()
	if settings.PrefetchWindow <= 0 {
		settings.PrefetchWindow = def.PrefetchWindow
	}
	if settings.MaxConcurrentPrefetch <= 0 {
		settings.MaxConcurrentPrefetch = def.MaxConcurrentPrefetch
	}
	if settings.MinFetchIntervalMs <= 0 {
		settings.MinFetchIntervalMs = def.MinFetchIntervalMs
	}
	if settings.DecisionCooldownMs <= 0 {
		settings.DecisionCooldownMs = def.DecisionCooldownMs
	}
	return s.repo.Put(ctx, settings)
}
