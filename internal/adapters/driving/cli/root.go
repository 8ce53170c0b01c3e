// Package cli provides the plainapi command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JepStar990/plainapi/internal/adapters/driven/config/file"
	"github.com/JepStar990/plainapi/internal/adapters/driven/embedding"
	"github.com/JepStar990/plainapi/internal/adapters/driven/embedding/ollama"
	"github.com/JepStar990/plainapi/internal/adapters/driven/scraper/local"
	"github.com/JepStar990/plainapi/internal/adapters/driven/scraper/nasa"
	"github.com/JepStar990/plainapi/internal/adapters/driven/storage/chromem"
	filestore "github.com/JepStar990/plainapi/internal/adapters/driven/storage/file"
	"github.com/JepStar990/plainapi/internal/adapters/driven/storage/sqlite"
	"github.com/JepStar990/plainapi/internal/config"
	"github.com/JepStar990/plainapi/internal/core/ports/driven"
	"github.com/JepStar990/plainapi/internal/core/ports/driving"
	"github.com/JepStar990/plainapi/internal/core/services"
	"github.com/JepStar990/plainapi/internal/logger"
	"github.com/JepStar990/plainapi/internal/processing/assembler"
	"github.com/JepStar990/plainapi/internal/processing/metadata"
	"github.com/JepStar990/plainapi/internal/processing/segmenter"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services used by the commands. Wired lazily by initPipeline; tests inject
// fakes directly.
var (
	settings       *config.Settings
	settingsStore  driven.SettingsStore
	scraperService driven.Scraper
	rawSource      driven.RawDocumentSource
	ingestor       driving.Ingestor
)

var rootCmd = &cobra.Command{
	Use:   "plainapi",
	Short: "NASA API documentation ingestion pipeline",
	Long: `plainapi scrapes the NASA API documentation, splits it into
classified chunks and indexes them for semantic search.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initScraper wires the scraper and raw-document store from environment
// settings. Already-injected services are left alone.
func initScraper() error {
	var err error
	if settings == nil {
		if settings, err = config.Load(); err != nil {
			return err
		}
	}

	if scraperService == nil {
		scraperService = nasa.New(
			nasa.WithRateLimit(settings.ScrapeRateLimit),
			nasa.WithMaxConcurrent(settings.MaxConcurrent),
		)
	}

	if rawSource == nil {
		if rawSource, err = local.New(settings.RawDocsDir()); err != nil {
			return fmt.Errorf("init raw document store: %w", err)
		}
	}
	return nil
}

// initPipeline wires the full ingestion pipeline on top of the scraper.
func initPipeline() error {
	if ingestor != nil {
		return nil
	}
	if err := initScraper(); err != nil {
		return err
	}

	reports, err := filestore.New(settings.ProcessedDocsDir())
	if err != nil {
		return fmt.Errorf("init report store: %w", err)
	}

	chunkStore, err := sqlite.NewStore(settings.ChunkStoreDir())
	if err != nil {
		return fmt.Errorf("init chunk store: %w", err)
	}

	vectors, err := chromem.New(settings.VectorStoreDir(), settings.CollectionName)
	if err != nil {
		return fmt.Errorf("init vector store: %w", err)
	}

	embedder := embedding.NewZeroFallback(ollama.NewEmbeddingService(ollama.Config{
		BaseURL:    settings.OllamaURL,
		Model:      settings.OllamaEmbedModel,
		Dimensions: settings.EmbeddingDimensions,
	}))

	processor := services.NewProcessor(
		metadata.New(),
		assembler.New(
			assembler.WithSegmenter(segmenter.New(
				segmenter.WithMaxSize(settings.ChunkSize),
				segmenter.WithOverlap(settings.ChunkOverlap),
			)),
			assembler.WithMinChunkLength(settings.MinChunkLength),
		),
	)

	ingestor = services.NewIngestor(
		scraperService, rawSource, processor, embedder, vectors, chunkStore, reports)
	return nil
}

// initSettingsStore wires the TOML settings store unless a test injected one.
func initSettingsStore() error {
	if settingsStore != nil {
		return nil
	}

	store, err := file.NewSettingsStore("")
	if err != nil {
		return fmt.Errorf("open settings store: %w", err)
	}
	settingsStore = store
	return nil
}
