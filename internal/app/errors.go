package app

import (
	"errors"
	"strconv"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/ports"
)

var (
	ErrNotFound = ports.ErrNotFound
	ErrConflict = ports.ErrConflict

	// ErrBadIdentifier : l'ID d'une entrée n'est pas numérique.
	// On ne consomme jamais de slot Jikan pour ça.
	ErrBadIdentifier = errors.New("entry id is not a numeric mal id")

	// ErrNoSession : aucune liste chargée.
	ErrNoSession = errors.New("no session loaded")

	// ErrEmptyList : l'export ne contient aucune entrée exploitable
	// (après filtre de statut éventuel).
	ErrEmptyList = errors.New("list has no entries")

	// ErrExhausted : le curseur a dépassé la fin de la liste.
	ErrExhausted = errors.New("session exhausted")

	// ErrCooldown : décision reçue pendant la fenêtre de debounce.
	ErrCooldown = errors.New("decision ignored during cooldown")

	// ErrNotResolved : décision reçue alors que l'entrée courante
	// n'a pas encore de métadonnées.
	ErrNotResolved = errors.New("current entry not resolved yet")
)

// ResolveError distingue un refus HTTP (status présent) d'une erreur de
// transport. Dans les deux cas l'échec est transitoire : l'entrée reste
// absente du cache et sera retentée à la prochaine demande.
type ResolveError struct {
	MalID      int
	StatusCode int
	Err        error
}

func (e *ResolveError) Error() string {
	if e == nil {
		return ""
	}
	msg := "resolve mal id " + strconv.Itoa(e.MalID)
	if e.StatusCode > 0 {
		msg += ": http " + strconv.Itoa(e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolveError) Unwrap() error { return e.Err }
