package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"newsrank/internal/article"
)

// DB is the SQLite backing for the article and embedding stores. The
// in-memory stores remain authoritative at runtime; the database only
// persists their contents across process restarts.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates the backing database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			summary TEXT,
			source TEXT,
			url TEXT,
			image_url TEXT,
			topic TEXT NOT NULL,
			published_at TEXT NOT NULL,
			read_time TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at);
		CREATE INDEX IF NOT EXISTS idx_articles_topic ON articles(topic);

		CREATE TABLE IF NOT EXISTS embeddings (
			article_id TEXT PRIMARY KEY,
			vector_json TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

// SaveArticle upserts an article record.
func (d *DB) SaveArticle(a article.Article) error {
	query, args, err := sq.Insert("articles").
		Columns("id", "title", "summary", "source", "url", "image_url", "topic", "published_at", "read_time").
		Values(a.ID, a.Title, a.Summary, a.Source, a.URL, a.ImageURL, string(a.Topic), a.PublishedAt.UTC().Format(time.RFC3339), a.ReadTime).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			summary = excluded.summary,
			source = excluded.source,
			url = excluded.url,
			image_url = excluded.image_url,
			topic = excluded.topic,
			published_at = excluded.published_at,
			read_time = excluded.read_time`).
		ToSql()
	if err != nil {
		return fmt.Errorf("building article upsert: %w", err)
	}

	if _, err := d.db.Exec(query, args...); err != nil {
		return fmt.Errorf("upserting article %s: %w", a.ID, err)
	}
	return nil
}

// SaveEmbedding upserts the embedding vector for an article.
func (d *DB) SaveEmbedding(articleID string, vector []float32) error {
	encoded, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("encoding vector: %w", err)
	}

	query, args, err := sq.Insert("embeddings").
		Columns("article_id", "vector_json", "updated_at").
		Values(articleID, string(encoded), time.Now().UTC().Format(time.RFC3339)).
		Suffix(`ON CONFLICT(article_id) DO UPDATE SET
			vector_json = excluded.vector_json,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("building embedding upsert: %w", err)
	}

	if _, err := d.db.Exec(query, args...); err != nil {
		return fmt.Errorf("upserting embedding %s: %w", articleID, err)
	}
	return nil
}

// UpdateSummary persists a backfilled summary.
func (d *DB) UpdateSummary(articleID, summary, readTime string) error {
	query, args, err := sq.Update("articles").
		Set("summary", summary).
		Set("read_time", readTime).
		Where(sq.Eq{"id": articleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building summary update: %w", err)
	}

	if _, err := d.db.Exec(query, args...); err != nil {
		return fmt.Errorf("updating summary %s: %w", articleID, err)
	}
	return nil
}

// LoadInto populates the in-memory stores from the database. Embeddings
// whose dimensionality conflicts with previously loaded vectors are
// skipped, matching the ingestion-time policy.
func (d *DB) LoadInto(articles *ArticleStore, embeddings *EmbeddingStore) (int, error) {
	query, args, err := sq.Select("id", "title", "summary", "source", "url", "image_url", "topic", "published_at", "read_time").
		From("articles").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building article select: %w", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return 0, fmt.Errorf("loading articles: %w", err)
	}
	defer rows.Close()

	loaded := 0
	for rows.Next() {
		var a article.Article
		var topic, published string
		if err := rows.Scan(&a.ID, &a.Title, &a.Summary, &a.Source, &a.URL, &a.ImageURL, &topic, &published, &a.ReadTime); err != nil {
			return loaded, fmt.Errorf("scanning article: %w", err)
		}
		a.Topic = article.ParseTopic(topic)
		if t, err := time.Parse(time.RFC3339, published); err == nil {
			a.PublishedAt = t
		}
		articles.Put(a)
		loaded++
	}
	if err := rows.Err(); err != nil {
		return loaded, fmt.Errorf("iterating articles: %w", err)
	}

	if err := d.loadEmbeddings(embeddings); err != nil {
		return loaded, err
	}
	return loaded, nil
}

func (d *DB) loadEmbeddings(embeddings *EmbeddingStore) error {
	query, args, err := sq.Select("article_id", "vector_json").
		From("embeddings").
		ToSql()
	if err != nil {
		return fmt.Errorf("building embedding select: %w", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return fmt.Errorf("loading embeddings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, encoded string
		if err := rows.Scan(&id, &encoded); err != nil {
			return fmt.Errorf("scanning embedding: %w", err)
		}

		var vector []float32
		if err := json.Unmarshal([]byte(encoded), &vector); err != nil {
			continue // Skip corrupt rows rather than failing the load
		}
		// Dimension conflicts are skipped, not fatal
		_ = embeddings.Put(id, vector)
	}
	return rows.Err()
}

// CountArticles returns the number of persisted articles.
func (d *DB) CountArticles() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return n, nil
}
