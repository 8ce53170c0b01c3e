package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/JepStar990/plainapi/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/JepStar990/plainapi/internal/core/domain"
	"github.com/JepStar990/plainapi/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ChunkStore = (*Store)(nil)

// Store persists chunk records in a SQLite database. Chunks are keyed by
// their deterministic ID, so saving the same chunk twice updates in place.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a chunk store under dataDir, creating the directory and
// schema as needed.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "chunks.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SaveChunks stores or updates chunks in a single transaction.
func (s *Store) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, content, document_type, source_url, api_endpoint,
			chunk_index, metadata, embedding, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			document_type = excluded.document_type,
			source_url = excluded.source_url,
			api_endpoint = excluded.api_endpoint,
			chunk_index = excluded.chunk_index,
			metadata = excluded.metadata,
			embedding = excluded.embedding,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, chunk := range chunks {
		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for %s: %w", chunk.ID, err)
		}

		createdAt := chunk.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		updatedAt := chunk.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = now
		}

		if _, err := stmt.ExecContext(ctx,
			chunk.ID, chunk.Content, string(chunk.DocumentType), chunk.SourceURL,
			nullString(chunk.APIEndpoint), chunkIndex(chunk.Metadata),
			string(metadataJSON), float32SliceToBytes(chunk.Embedding),
			createdAt, updatedAt,
		); err != nil {
			return fmt.Errorf("saving chunk %s: %w", chunk.ID, err)
		}
	}

	return tx.Commit()
}

// GetChunk retrieves a chunk by ID.
func (s *Store) GetChunk(ctx context.Context, id string) (*domain.Chunk, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, content, document_type, source_url, api_endpoint,
			metadata, embedding, created_at, updated_at
		FROM chunks WHERE id = ?
	`, id)

	chunk, err := scanChunk(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}
	return chunk, nil
}

// ListBySourceURL returns all chunks extracted from a page, in chunk_index
// order.
func (s *Store) ListBySourceURL(ctx context.Context, sourceURL string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, document_type, source_url, api_endpoint,
			metadata, embedding, created_at, updated_at
		FROM chunks WHERE source_url = ?
		ORDER BY chunk_index
	`, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("listing chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunks = append(chunks, *chunk)
	}
	return chunks, rows.Err()
}

// DeleteBySourceURL removes all chunks extracted from a page.
func (s *Store) DeleteBySourceURL(ctx context.Context, sourceURL string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM chunks WHERE source_url = ?", sourceURL); err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return nil
}

// Count returns the number of stored chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanChunk(row scanner) (*domain.Chunk, error) {
	var (
		chunk        domain.Chunk
		docType      string
		apiEndpoint  sql.NullString
		metadataJSON string
		embedding    []byte
	)
	if err := row.Scan(&chunk.ID, &chunk.Content, &docType, &chunk.SourceURL,
		&apiEndpoint, &metadataJSON, &embedding, &chunk.CreatedAt, &chunk.UpdatedAt); err != nil {
		return nil, err
	}

	chunk.DocumentType = domain.DocumentType(docType)
	chunk.APIEndpoint = apiEndpoint.String
	chunk.Embedding = bytesToFloat32Slice(embedding)

	if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	return &chunk, nil
}

// migrate runs all pending .up.sql migrations in version order.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// chunkIndex pulls the chunk_index out of the metadata map. JSON round trips
// turn ints into float64.
func chunkIndex(md map[string]any) int {
	switch v := md["chunk_index"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// float32SliceToBytes encodes an embedding as little-endian float32 bits.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice decodes an embedding blob.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
