// Package local stores scraped raw documents as JSON files so a corpus can
// be re-ingested without hitting the network.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/JepStar990/plainapi/internal/core/domain"
	"github.com/JepStar990/plainapi/internal/core/ports/driven"
	"github.com/JepStar990/plainapi/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.RawDocumentSource = (*Store)(nil)

const maxFilenameLen = 100

// Store keeps one JSON file per raw document under dir.
type Store struct {
	dir string
}

// New creates a raw-document store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create raw docs dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Load reads all stored raw documents in filename order. A corrupt file is
// skipped with a warning.
func (s *Store) Load(_ context.Context) ([]domain.RawDocument, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list raw docs: %w", err)
	}
	sort.Strings(paths)

	docs := make([]domain.RawDocument, 0, len(paths))
	for _, path := range paths {
		doc, err := readDocument(path)
		if err != nil {
			logger.Warn("Skipping unreadable raw document %s: %v", filepath.Base(path), err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Save persists raw documents, one file each. Filenames derive from the URL
// so re-saving the same page overwrites the previous copy.
func (s *Store) Save(_ context.Context, docs []domain.RawDocument) error {
	for i, doc := range docs {
		path := filepath.Join(s.dir, fmt.Sprintf("%03d_%s.json", i, filenameFor(doc.URL)))

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal raw document %s: %w", doc.URL, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write raw document: %w", err)
		}
	}
	logger.Debug("Saved %d raw documents to %s", len(docs), s.dir)
	return nil
}

// Watch emits raw documents as their files appear in the store. Both
// channels close when ctx is cancelled.
func (s *Store) Watch(ctx context.Context) (<-chan domain.RawDocument, <-chan error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("watch %s: %w", s.dir, err)
	}

	docs := make(chan domain.RawDocument)
	errs := make(chan error, 1)

	go func() {
		defer close(docs)
		defer close(errs)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				if !strings.HasSuffix(event.Name, ".json") {
					continue
				}

				doc, err := readDocument(event.Name)
				if err != nil {
					// Writes are not atomic; a partial file shows up
					// again on the next write event.
					logger.Debug("Ignoring incomplete raw document %s: %v", event.Name, err)
					continue
				}
				select {
				case docs <- doc:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return docs, errs, nil
}

func readDocument(path string) (domain.RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RawDocument{}, err
	}

	var doc domain.RawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.RawDocument{}, err
	}
	if doc.URL == "" {
		return domain.RawDocument{}, fmt.Errorf("document missing url")
	}
	return doc, nil
}

// filenameFor sanitises a URL into a stable filename stem.
func filenameFor(url string) string {
	name := url
	if i := strings.Index(name, "//"); i >= 0 {
		name = name[i+2:]
	}
	name = strings.NewReplacer("/", "_", "?", "_", "#", "_").Replace(name)
	if len(name) > maxFilenameLen {
		name = name[:maxFilenameLen]
	}
	return name
}
