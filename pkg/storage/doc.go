// Package storage writes scrape reports to disk.
//
// The Manager type owns an output directory. Reports are JSON files named
// after the report and are written through a temporary file followed by a
// rename, so an interrupted run never leaves a truncated report behind.
// Existing reports are scanned when the Manager is created.
//
// Usage:
//
//	manager, err := storage.NewManager("reports")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	path, err := manager.SaveJSON(body, "eurlex-2025-01-01_2025-12-31")
//	if err != nil {
//	    log.Printf("Failed to save report: %v", err)
//	}
package storage
