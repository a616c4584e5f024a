package domain

import "time"

// ListEntry est une ligne allégée de l'export : juste de quoi identifier
// l'anime et l'afficher en attendant la résolution Jikan.
//
// Les doublons d'ID sont tolérés (positions distinctes dans la liste).
type ListEntry struct {
	// ID est l'identifiant MAL sous forme de chaîne, tel que lu dans l'export.
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// AnimeList est un export uploadé, conservé brut pour pouvoir être rechargé.
type AnimeList struct {
	ID      string
	Name    string
	RawXML  []byte
	Entries []ListEntry

	CreatedAt time.Time
}
