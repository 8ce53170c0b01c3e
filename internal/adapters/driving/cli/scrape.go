package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the NASA API documentation",
	Long: `Fetches the NASA API documentation pages and stores them as raw
documents for later ingestion. No processing or indexing happens here;
run 'plainapi ingest --from-store' to process the stored pages.`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	if err := initScraper(); err != nil {
		return err
	}
	if scraperService == nil || rawSource == nil {
		return errors.New("scraper not configured")
	}

	ctx := context.Background()
	cmd.Println("Scraping NASA API documentation...")

	result, err := scraperService.ScrapeAll(ctx)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	if len(result.Documents) > 0 {
		if err := rawSource.Save(ctx, result.Documents); err != nil {
			return fmt.Errorf("save raw documents: %w", err)
		}
	}

	cmd.Printf("Scraped %d/%d pages in %.1fs\n",
		result.ProcessedURLs, result.TotalURLs, result.Duration())
	for _, e := range result.Errors {
		cmd.Printf("  error: %s\n", e)
	}

	if !result.Successful {
		return fmt.Errorf("%d pages failed", len(result.Errors))
	}
	return nil
}
