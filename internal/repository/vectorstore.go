package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/lakeworks/ragline/internal/domain"
)

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// VectorStore is the Postgres/pgvector-backed vector index. It satisfies the
// same namespace/push/search contract as the remote vector-index service,
// minus embedding generation, which stays with the embedding provider.
type VectorStore struct {
	db dbtx
}

// NewVectorStore creates a VectorStore on the given pool.
func NewVectorStore(pool *pgxpool.Pool) *VectorStore {
	return &VectorStore{db: pool}
}

// CreateNamespace mints a new namespace identifier and records it.
func (r *VectorStore) CreateNamespace(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(ctx,
		`INSERT INTO vector_namespaces (id, created_at) VALUES ($1, $2)`,
		id, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create vector namespace: %w", err)
	}
	return id, nil
}

// Push stores one indexed record under a namespace. Records are append-only;
// repeated ingestion of the same document yields independent rows.
func (r *VectorStore) Push(ctx context.Context, indexID string, rec domain.IndexedRecord) error {
	metadata := rec.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal record metadata: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO vector_records (id, namespace_id, content, embedding, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(),
		indexID,
		rec.Text,
		pgvector.NewVector(rec.Vector),
		metadataJSON,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to push vector record: %w", err)
	}
	return nil
}

// Search returns the topK nearest records by cosine distance, highest
// similarity first.
func (r *VectorStore) Search(ctx context.Context, indexID string, vector []float32, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = 4
	}

	rows, err := r.db.Query(ctx,
		`SELECT content, 1 - (embedding <=> $1) AS score
		 FROM vector_records
		 WHERE namespace_id = $2
		 ORDER BY embedding <=> $1
		 LIMIT $3`,
		pgvector.NewVector(vector),
		indexID,
		topK,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search vector records: %w", err)
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		var res domain.SearchResult
		if err := rows.Scan(&res.Text, &res.Score); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read search results: %w", err)
	}
	return results, nil
}
