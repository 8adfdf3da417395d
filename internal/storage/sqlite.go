package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/glabrego/rss-cli/internal/feed"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS feeds (
  id INTEGER PRIMARY KEY,
  position INTEGER NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS items (
  feed_id INTEGER NOT NULL REFERENCES feeds(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  title TEXT NOT NULL,
  link TEXT NOT NULL DEFAULT '',
  published TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (feed_id, position)
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SaveCollection replaces every stored feed with the contents of c in a
// single transaction.
func (r *Repository) SaveCollection(ctx context.Context, c feed.Collection) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM feeds`); err != nil {
		return fmt.Errorf("clear feeds: %w", err)
	}

	feedStmt, err := tx.PrepareContext(ctx, `INSERT INTO feeds (id, position, title, url) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare feed statement: %w", err)
	}
	defer feedStmt.Close()

	itemStmt, err := tx.PrepareContext(ctx, `INSERT INTO items (feed_id, position, title, link, published) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare item statement: %w", err)
	}
	defer itemStmt.Close()

	for i, f := range c.Feeds {
		feedID := int64(i + 1)
		if _, err := feedStmt.ExecContext(ctx, feedID, i, f.Title, f.URL); err != nil {
			return fmt.Errorf("save feed %s: %w", f.URL, err)
		}
		for j, item := range f.Items {
			if _, err := itemStmt.ExecContext(ctx, feedID, j, item.Title, item.Link, item.Published); err != nil {
				return fmt.Errorf("save item %d of %s: %w", j, f.URL, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) LoadCollection(ctx context.Context) (feed.Collection, error) {
	var c feed.Collection

	rows, err := r.db.QueryContext(ctx, `SELECT id, title, url FROM feeds ORDER BY position`)
	if err != nil {
		return c, fmt.Errorf("query feeds: %w", err)
	}
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		var f feed.Feed
		if err := rows.Scan(&id, &f.Title, &f.URL); err != nil {
			rows.Close()
			return c, fmt.Errorf("scan feed: %w", err)
		}
		f.Items = []feed.Entry{}
		ids = append(ids, id)
		c.Feeds = append(c.Feeds, f)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return c, fmt.Errorf("rows iteration: %w", err)
	}
	rows.Close()

	byID := make(map[int64]int, len(ids))
	for i, id := range ids {
		byID[id] = i
	}

	itemRows, err := r.db.QueryContext(ctx, `SELECT feed_id, title, link, published FROM items ORDER BY feed_id, position`)
	if err != nil {
		return c, fmt.Errorf("query items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var feedID int64
		var item feed.Entry
		if err := itemRows.Scan(&feedID, &item.Title, &item.Link, &item.Published); err != nil {
			return c, fmt.Errorf("scan item: %w", err)
		}
		idx, ok := byID[feedID]
		if !ok {
			return c, fmt.Errorf("item references unknown feed %d", feedID)
		}
		c.Feeds[idx].Items = append(c.Feeds[idx].Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return c, fmt.Errorf("rows iteration: %w", err)
	}
	return c, nil
}

func loadSQLite(ctx context.Context, path string) (feed.Collection, error) {
	repo, err := NewRepository(path)
	if err != nil {
		return feed.Collection{}, err
	}
	defer repo.Close()

	if err := repo.Init(ctx); err != nil {
		return feed.Collection{}, err
	}
	return repo.LoadCollection(ctx)
}

func saveSQLite(ctx context.Context, path string, c feed.Collection) error {
	repo, err := NewRepository(path)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.Init(ctx); err != nil {
		return err
	}
	return repo.SaveCollection(ctx, c)
}
