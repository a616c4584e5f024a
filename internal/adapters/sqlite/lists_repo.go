package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/ports"
)

type ListsRepository struct {
	db *sql.DB
}

func NewListsRepository(db *sql.DB) *ListsRepository {
	return &ListsRepository{db: db}
}

func (r *ListsRepository) Save(ctx context.Context, list domain.AnimeList) (domain.AnimeList, error) {
	entriesJSON, err := json.Marshal(list.Entries)
	if err != nil {
		return domain.AnimeList{}, err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO lists(id, name, raw_xml, entries_json, created_at)
		VALUES(?, ?, ?, ?, ?)
	`, list.ID, list.Name, list.RawXML, entriesJSON, list.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return domain.AnimeList{}, err
	}
	return r.Get(ctx, list.ID)
}

func (r *ListsRepository) Get(ctx context.Context, id string) (domain.AnimeList, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, raw_xml, entries_json, created_at
		FROM lists WHERE id = ?
	`, id)
	return scanList(row)
}

func (r *ListsRepository) Latest(ctx context.Context) (domain.AnimeList, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, raw_xml, entries_json, created_at
		FROM lists ORDER BY created_at DESC, id DESC LIMIT 1
	`)
	return scanList(row)
}

func (r *ListsRepository) List(ctx context.Context, limit int) ([]domain.AnimeList, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, raw_xml, entries_json, created_at
		FROM lists ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.AnimeList{}
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *ListsRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ports.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanList(row rowScanner) (domain.AnimeList, error) {
	var l domain.AnimeList
	var entriesJSON, createdAt string
	err := row.Scan(&l.ID, &l.Name, &l.RawXML, &entriesJSON, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AnimeList{}, ports.ErrNotFound
		}
		return domain.AnimeList{}, err
	}
	if err := json.Unmarshal([]byte(entriesJSON), &l.Entries); err != nil {
		return domain.AnimeList{}, err
	}
	l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return l, nil
}
