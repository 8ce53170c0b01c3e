package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/JepStar990/plainapi/internal/core/ports/driving"
)

var (
	ingestFromStore bool
	ingestWatch     bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run the full ingestion pipeline",
	Long: `Scrapes the NASA API documentation (or replays stored raw documents),
splits the pages into classified chunks, embeds them and indexes them
for semantic search.

With --watch the command keeps running and re-ingests whenever new raw
documents appear in the store. Chunk IDs are deterministic, so repeated
runs over the same pages update records in place.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestFromStore, "from-store", false,
		"replay stored raw documents instead of scraping")
	ingestCmd.Flags().BoolVar(&ingestWatch, "watch", false,
		"keep running and re-ingest when new raw documents appear")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if err := initPipeline(); err != nil {
		return err
	}
	if ingestor == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()

	run := func() (*driving.IngestStatus, error) {
		if ingestFromStore {
			return ingestWithProgress(ctx, cmd, ingestor.IngestFromStore)
		}
		return ingestWithProgress(ctx, cmd, ingestor.IngestFromScrape)
	}

	status, err := run()
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	printStatus(cmd, status)

	if !ingestWatch {
		return nil
	}
	return watchAndReingest(ctx, cmd)
}

// ingestWithProgress runs an ingest while displaying progress updates.
func ingestWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	run func(context.Context) (*driving.IngestStatus, error),
) (*driving.IngestStatus, error) {
	type result struct {
		status *driving.IngestStatus
		err    error
	}
	resCh := make(chan result, 1)
	go func() {
		status, err := run(ctx)
		resCh <- result{status, err}
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case res := <-resCh:
			return res.status, res.err
		case <-ticker.C:
			status := ingestor.Status(ctx)
			if status != nil && status.DocumentsProcessed > lastCount {
				cmd.Printf("\rProcessing... %d documents", status.DocumentsProcessed)
				lastCount = status.DocumentsProcessed
			}
		}
	}
}

// watchAndReingest replays the raw document store whenever new documents
// land in it. Events are debounced so a burst of file writes triggers one
// run.
func watchAndReingest(ctx context.Context, cmd *cobra.Command) error {
	if rawSource == nil {
		return errors.New("raw document store not configured")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	docs, errs, err := rawSource.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch raw documents: %w", err)
	}

	cmd.Println("Watching for new raw documents (Ctrl-C to stop)...")

	var (
		pending  bool
		debounce = time.NewTimer(0)
	)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			cmd.Printf("watch error: %v\n", err)
		case doc, ok := <-docs:
			if !ok {
				return nil
			}
			cmd.Printf("New raw document: %s\n", doc.URL)
			pending = true
			debounce.Reset(2 * time.Second)
		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false

			status, err := ingestor.IngestFromStore(ctx)
			if err != nil {
				cmd.Printf("re-ingest failed: %v\n", err)
				continue
			}
			printStatus(cmd, status)
		}
	}
}

func printStatus(cmd *cobra.Command, status *driving.IngestStatus) {
	if status == nil {
		return
	}
	cmd.Printf("\rIngest %s: %d documents, %d chunks indexed, %d errors\n",
		status.RunID, status.DocumentsProcessed, status.ChunksIndexed, status.ErrorCount)
}
