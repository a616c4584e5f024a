package domain

// AnimeMetadata est le résultat d'une résolution Jikan.
// Immuable une fois en cache, jamais mise à jour partiellement.
type AnimeMetadata struct {
	MalID         int     `json:"malId"`
	Title         string  `json:"title"`
	TitleEnglish  string  `json:"titleEnglish,omitempty"`
	ImageURL      string  `json:"imageUrl"`
	LargeImageURL string  `json:"largeImageUrl,omitempty"`
	Episodes      int     `json:"episodes,omitempty"`
	Type          string  `json:"type,omitempty"`
	Score         float64 `json:"score,omitempty"`
}
