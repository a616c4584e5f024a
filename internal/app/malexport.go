package app

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
)

// ParseError : export illisible ou vide. Récupérable — la présentation
// invite à re-uploader, rien n'est fatal au process.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return "parse mal export: " + e.Reason
	}
	return "parse mal export: " + e.Reason + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Format d'export MyAnimeList (XML). Seuls trois champs nous intéressent,
// le reste de l'export est ignoré.
type malExport struct {
	XMLName xml.Name         `xml:"myanimelist"`
	Anime   []malExportEntry `xml:"anime"`
}

type malExportEntry struct {
	SeriesAnimeDBID string `xml:"series_animedb_id"`
	SeriesTitle     string `xml:"series_title"`
	MyStatus        string `xml:"my_status"`
}

// ParseMALExport lit un export XML MyAnimeList et rend les entrées dans
// l'ordre du fichier. Les IDs restent des chaînes : la validation numérique
// appartient au pipeline de résolution, pas au parsing.
func ParseMALExport(r io.Reader) ([]domain.ListEntry, error) {
	var export malExport
	if err := xml.NewDecoder(r).Decode(&export); err != nil {
		return nil, &ParseError{Reason: "invalid xml", Err: err}
	}
	if len(export.Anime) == 0 {
		return nil, &ParseError{Reason: "no anime entries"}
	}

	entries := make([]domain.ListEntry, 0, len(export.Anime))
	for _, a := range export.Anime {
		id := strings.TrimSpace(a.SeriesAnimeDBID)
		if id == "" {
			continue
		}
		entries = append(entries, domain.ListEntry{
			ID:     id,
			Title:  strings.TrimSpace(a.SeriesTitle),
			Status: strings.TrimSpace(a.MyStatus),
		})
	}
	if len(entries) == 0 {
		return nil, &ParseError{Reason: "no usable entries"}
	}
	return entries, nil
}

// FilterByStatus garde les entrées au statut donné ("" = tout garder).
// La comparaison ignore la casse ("plan to watch" == "Plan to Watch").
func FilterByStatus(entries []domain.ListEntry, status string) []domain.ListEntry {
	status = strings.TrimSpace(status)
	if status == "" {
		return entries
	}
	out := make([]domain.ListEntry, 0, len(entries))
	for _, e := range entries {
		if strings.EqualFold(e.Status, status) {
			out = append(out, e)
		}
	}
	return out
}
