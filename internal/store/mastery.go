package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/conjugo/internal/mastery"
)

const masteryTable = "mastery"

var _ mastery.Catalog = (*Store)(nil)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// Get returns the stored score for key. ok is false when no row exists.
func (s *Store) Get(ctx context.Context, key string) (int, bool, error) {
	query, args := builder().
		Select("score").
		From(entsql.Table(masteryTable)).
		Where(entsql.EQ("key", key)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, false, fmt.Errorf("query mastery %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, false, fmt.Errorf("query mastery %q: %w", key, err)
		}
		return 0, false, nil
	}
	var score int
	if err := rows.Scan(&score); err != nil {
		return 0, false, fmt.Errorf("scan mastery %q: %w", key, err)
	}
	return score, true, nil
}

// Set upserts the score for key.
func (s *Store) Set(ctx context.Context, key string, value int) error {
	query, args := builder().
		Insert(masteryTable).
		Columns("key", "score", "updated_at").
		Values(key, value, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("set mastery %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	query, args := builder().
		Delete(masteryTable).
		Where(entsql.EQ("key", key)).
		Query()

	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete mastery %q: %w", key, err)
	}
	return nil
}

// List returns every entry whose key starts with prefix, ordered by key.
func (s *Store) List(ctx context.Context, prefix string) ([]mastery.Entry, error) {
	query, args := builder().
		Select("key", "score").
		From(entsql.Table(masteryTable)).
		Where(entsql.HasPrefix("key", prefix)).
		OrderBy("key").
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("list mastery: %w", err)
	}
	defer rows.Close()

	var entries []mastery.Entry
	for rows.Next() {
		var e mastery.Entry
		if err := rows.Scan(&e.Key, &e.Score); err != nil {
			return nil, fmt.Errorf("scan mastery: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list mastery: %w", err)
	}
	return entries, nil
}

// DeleteAll removes every entry whose key starts with prefix and reports how
// many were removed.
func (s *Store) DeleteAll(ctx context.Context, prefix string) (int64, error) {
	query, args := builder().
		Delete(masteryTable).
		Where(entsql.HasPrefix("key", prefix)).
		Query()

	var res sql.Result
	if err := s.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("delete mastery: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete mastery: %w", err)
	}
	return n, nil
}
