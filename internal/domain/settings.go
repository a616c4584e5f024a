package domain

type Settings struct {
	// Filtre appliqué au chargement d'un export ("" = toutes les entrées).
	StatusFilter string `json:"statusFilter"`

	// Fenêtre de préchargement (positions au-delà du curseur).
	PrefetchWindow int `json:"prefetchWindow"`

	// Plafond de résolutions de préchargement simultanées.
	MaxConcurrentPrefetch int `json:"maxConcurrentPrefetch"`

	// Espacement minimal entre deux départs d'appels Jikan, en millisecondes.
	MinFetchIntervalMs int `json:"minFetchIntervalMs"`

	// Durée pendant laquelle les décisions sont ignorées après un swipe.
	DecisionCooldownMs int `json:"decisionCooldownMs"`
}

func DefaultSettings() Settings {
	return Settings{
		StatusFilter:          "",
		PrefetchWindow:        3,
		MaxConcurrentPrefetch: 3,
		MinFetchIntervalMs:    900,
		DecisionCooldownMs:    1000,
	}
}
