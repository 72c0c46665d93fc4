package main

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"eurlexscraper/internal/server"
	"eurlexscraper/pkg/eurlex"
	"eurlexscraper/pkg/scraper"
	"eurlexscraper/pkg/ui"

	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	Long: `Run the HTTP service.

Routes:
  GET /scrape-all-eurlex   aggregate every result page of the configured search
  GET /                    index.html
  GET /demo                demo.html
  GET /display-results     results.html
  GET /healthz             liveness probe
  GET /*                   files from the static directory

The server stops gracefully on SIGINT or SIGTERM.`,
	Example: `  # Listen on the default port (3000, or $PORT)
  eurlexscraper serve

  # Serve pages from a custom directory on port 8080
  eurlexscraper serve --port 8080 --static-dir ./web`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "port to listen on (default 3000)")
	serveCmd.Flags().String("static-dir", "", "directory served for static pages (default ./public)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := initLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := eurlex.NewClient(&cfg.Search, log)
	agg := scraper.New(client, cfg.Search.MaxPages, log)
	srv := server.New(cfg, agg, log)

	ui.PrintBanner()
	ui.PrintInfo("Server running on port", strconv.Itoa(cfg.Server.Port))

	if err := srv.Run(ctx); err != nil {
		log.WithError(err).Error("Server stopped with error")
		return err
	}
	ui.PrintSuccess("Server stopped")
	return nil
}
