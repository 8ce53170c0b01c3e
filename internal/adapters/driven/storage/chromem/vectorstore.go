// Package chromem indexes chunks for similarity search using an embedded
// chromem-go database persisted on disk.
package chromem

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"

	chromemgo "github.com/philippgille/chromem-go"

	"github.com/JepStar990/plainapi/internal/core/domain"
	"github.com/JepStar990/plainapi/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// DefaultCollection is the collection name for NASA documentation chunks.
const DefaultCollection = "nasa_api_docs"

// VectorStore persists chunk embeddings in a chromem-go collection.
// Documents are keyed by chunk ID, so re-adding a chunk overwrites the
// previous record.
type VectorStore struct {
	db         *chromemgo.DB
	collection *chromemgo.Collection
}

// New opens (or creates) a persistent vector store at path.
func New(path, collectionName string) (*VectorStore, error) {
	if collectionName == "" {
		collectionName = DefaultCollection
	}

	db, err := chromemgo.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("open vector db: %w", err)
	}

	// Embeddings are always supplied by the pipeline; the collection's
	// embedding func must never be reached.
	noEmbed := func(_ context.Context, _ string) ([]float32, error) {
		return nil, fmt.Errorf("vector store received a document without an embedding")
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, noEmbed)
	if err != nil {
		return nil, fmt.Errorf("open collection %s: %w", collectionName, err)
	}

	return &VectorStore{db: db, collection: collection}, nil
}

// Add indexes chunks, overwriting on ID collision. Chunks without an
// embedding are rejected.
func (v *VectorStore) Add(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	docs := make([]chromemgo.Document, 0, len(chunks))
	for _, c := range chunks {
		if len(c.Embedding) == 0 {
			return fmt.Errorf("%w: chunk %s has no embedding", domain.ErrInvalidInput, c.ID)
		}
		docs = append(docs, chromemgo.Document{
			ID:        c.ID,
			Content:   c.Content,
			Embedding: c.Embedding,
			Metadata:  FlattenMetadata(c.Metadata),
		})
	}

	if err := v.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrVectorStoreUnavailable, err)
	}
	return nil
}

// Query returns the k nearest chunks to the query embedding, nearest first.
func (v *VectorStore) Query(ctx context.Context, embedding []float32, k int) ([]driven.VectorHit, error) {
	count := v.collection.Count()
	if count == 0 || k <= 0 {
		return []driven.VectorHit{}, nil
	}
	if k > count {
		k = count
	}

	results, err := v.collection.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVectorStoreUnavailable, err)
	}

	hits := make([]driven.VectorHit, len(results))
	for i, r := range results {
		hits[i] = driven.VectorHit{
			ChunkID:    r.ID,
			Content:    r.Content,
			Metadata:   r.Metadata,
			Similarity: r.Similarity,
		}
	}
	return hits, nil
}

// Count returns the number of indexed chunks.
func (v *VectorStore) Count(_ context.Context) (int, error) {
	return v.collection.Count(), nil
}

// Close releases resources. The chromem DB persists on every write, so
// there is nothing to flush.
func (v *VectorStore) Close() error {
	return nil
}

// FlattenMetadata converts a chunk metadata map to the string-valued map the
// vector store requires. String slices join with commas; unknown types fall
// back to fmt formatting.
func FlattenMetadata(md map[string]any) map[string]string {
	flat := make(map[string]string, len(md))
	for k, val := range md {
		switch v := val.(type) {
		case string:
			flat[k] = v
		case []string:
			joined := make([]string, len(v))
			copy(joined, v)
			sort.Strings(joined)
			flat[k] = strings.Join(joined, ",")
		case int:
			flat[k] = strconv.Itoa(v)
		case float64:
			flat[k] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			flat[k] = strconv.FormatBool(v)
		default:
			flat[k] = fmt.Sprintf("%v", v)
		}
	}
	return flat
}
