package main

import (
	"fmt"
	"os"

	"eurlexscraper/internal/server"
	"eurlexscraper/pkg/eurlex"
	"eurlexscraper/pkg/scraper"
	"eurlexscraper/pkg/storage"
	"eurlexscraper/pkg/ui"

	"github.com/spf13/cobra"
)

var (
	// Scrape command flags
	outputDir  string
	reportName string
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one aggregation and print or save the result",
	Long: `Run one aggregation of the configured search and emit the same JSON body
the /scrape-all-eurlex endpoint returns.

Without --output the JSON is written to stdout. With --output it is saved
atomically as <output>/<name>.json. The command exits non-zero when the
scrape fails.`,
	Example: `  # Scrape with the configured query and print JSON
  eurlexscraper scrape

  # Override the query and the date range
  eurlexscraper scrape --query "antidumping AND urea" --from 2024-01-01 --to 2024-12-31

  # Save the report under ./reports
  eurlexscraper scrape --output ./reports --name urea-2024`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().String("query", "", "search expression (default from config)")
	scrapeCmd.Flags().String("from", "", "start date, YYYY-MM-DD")
	scrapeCmd.Flags().String("to", "", "end date, YYYY-MM-DD")
	scrapeCmd.Flags().Int("max-pages", 0, "maximum pages to fetch, 0 for no limit (default 200)")
	scrapeCmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory to save the report in instead of printing it")
	scrapeCmd.Flags().StringVar(&reportName, "name", "", "report file name without extension (default eurlex-<from>_<to>)")
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := initLogger(cfg)
	if err != nil {
		return err
	}

	params := eurlex.ParamsFromConfig(&cfg.Search)
	ui.PrintInfo("Query", params.Query)
	ui.PrintInfo("Period", params.DateFrom+" → "+params.DateTo)
	ui.PrintHighlight("[SCRAPING ALL RESULT PAGES]")

	client := eurlex.NewClient(&cfg.Search, log)
	outcome := scraper.New(client, cfg.Search.MaxPages, log).ScrapeAll(cmd.Context(), params)
	_, body := server.NewScrapeResponse(outcome)

	if outputDir == "" {
		data, err := server.EncodeJSON(body)
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	} else {
		name := reportName
		if name == "" {
			name = fmt.Sprintf("eurlex-%s_%s", params.DateFrom, params.DateTo)
		}
		manager, err := storage.NewManager(outputDir)
		if err != nil {
			return err
		}
		ui.PrintInfo("Output directory", manager.GetOutputDir())
		if manager.Exists(name) {
			ui.PrintWarning("Overwriting existing report", manager.Path(name))
		}
		path, err := manager.SaveJSON(body, name)
		if err != nil {
			return err
		}
		ui.PrintInfo("Report", path)
	}

	return reportOutcome(outcome)
}

// reportOutcome prints a summary and turns a failed scrape into an error
func reportOutcome(outcome *scraper.Outcome) error {
	switch outcome.Status {
	case scraper.StatusFailed:
		return fmt.Errorf("%s: %w", server.MessageFailure, outcome.Err)
	case scraper.StatusNoResults:
		ui.PrintWarning(server.MessageNoResults)
	default:
		ui.PrintSuccess(fmt.Sprintf("%s: %d results from %d pages", server.MessageSuccess, outcome.Total(), outcome.Pages))
	}
	if outcome.Truncated {
		ui.PrintWarning("Page limit reached, results are truncated")
	}
	return nil
}
