// Package logger provides a structured logging interface for the EUR-Lex
// scraper.
//
// It wraps zerolog behind a small interface so components can be handed a
// logger explicitly and tests can swap in NewNopLogger or NewTestLogger.
//
//	log, err := logger.New(&cfg.Logging)
//	log.WithField("page", 3).Info("Scraped result page")
//	log.WithError(err).Error("Scrape failed")
//
// Output is a colourised console writer by default; set Format to "json"
// for one JSON object per line, and File to additionally append to a file.
package logger
