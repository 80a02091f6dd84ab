package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/nimishaaaaaw/AgentGraph-Intel/rag"
)

// PgVectorStore persists documents in Postgres with pgvector embeddings.
// Similarity search runs in the database with the cosine distance operator.
type PgVectorStore struct {
	db    *sql.DB
	table string
}

var _ rag.VectorStore = (*PgVectorStore)(nil)

// NewPgVectorStore opens a connection to Postgres and ensures the document
// table exists. The dimension fixes the vector column width and must match
// the embedder in use.
func NewPgVectorStore(dsn, table string, dimension int) (*PgVectorStore, error) {
	if table == "" {
		table = "documents"
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	store := &PgVectorStore{db: db, table: table}
	if err := store.ensureSchema(dimension); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *PgVectorStore) ensureSchema(dimension int) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}',
			embedding vector(%d) NOT NULL
		)`, s.table, dimension),
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("initializing schema: %w", err)
		}
	}
	return nil
}

// Add upserts documents. Every document must carry a precomputed embedding.
func (s *PgVectorStore) Add(ctx context.Context, docs []rag.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`INSERT INTO %s (id, content, metadata, embedding)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET content = EXCLUDED.content, metadata = EXCLUDED.metadata, embedding = EXCLUDED.embedding`, s.table)

	for _, doc := range docs {
		if len(doc.Embedding) == 0 {
			return fmt.Errorf("document %q has no embedding", doc.ID)
		}
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		metadata, err := json.Marshal(doc.Metadata)
		if err != nil {
			return fmt.Errorf("encoding metadata for document %q: %w", doc.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, doc.ID, doc.Content, metadata, pgvector.NewVector(doc.Embedding)); err != nil {
			return fmt.Errorf("inserting document %q: %w", doc.ID, err)
		}
	}
	return tx.Commit()
}

// Search returns the k documents nearest to the query vector by cosine
// distance, optionally filtered on metadata fields.
func (s *PgVectorStore) Search(ctx context.Context, queryVector []float32, k int, filter map[string]any) ([]rag.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	args := []any{pgvector.NewVector(queryVector)}
	var where []string
	for key, value := range filter {
		args = append(args, key, fmt.Sprint(value))
		where = append(where, fmt.Sprintf("metadata->>$%d = $%d", len(args)-1, len(args)))
	}

	query := fmt.Sprintf(`SELECT id, content, metadata, 1 - (embedding <=> $1) AS score FROM %s`, s.table)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, k)
	query += fmt.Sprintf(" ORDER BY embedding <=> $1 LIMIT $%d", len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}
	defer rows.Close()

	var results []rag.SearchResult
	for rows.Next() {
		var (
			doc      rag.Document
			metadata []byte
			score    float64
		)
		if err := rows.Scan(&doc.ID, &doc.Content, &metadata, &score); err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &doc.Metadata); err != nil {
				return nil, fmt.Errorf("decoding metadata for document %q: %w", doc.ID, err)
			}
		}
		results = append(results, rag.SearchResult{Document: doc, Score: score})
	}
	return results, rows.Err()
}

// Close releases the underlying connection pool.
func (s *PgVectorStore) Close() error {
	return s.db.Close()
}
