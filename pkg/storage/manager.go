package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const reportExt = ".json"

// Manager writes scrape reports into an output directory and tracks which
// report names already exist there
type Manager struct {
	outputDir string
	reports   map[string]bool
	mu        sync.RWMutex
}

// NewManager creates a new storage manager
func NewManager(outputDir string) (*Manager, error) {
	// Create output directory if it doesn't exist
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manager := &Manager{
		outputDir: outputDir,
		reports:   make(map[string]bool),
	}

	if err := manager.scanExistingFiles(); err != nil {
		return nil, fmt.Errorf("failed to scan existing files: %w", err)
	}

	return manager, nil
}

// scanExistingFiles records the reports already present in the output directory
func (m *Manager) scanExistingFiles() error {
	entries, err := os.ReadDir(m.outputDir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == reportExt {
			m.reports[strings.TrimSuffix(entry.Name(), reportExt)] = true
		}
	}

	return nil
}

// Exists reports whether a report with the given name has been written
func (m *Manager) Exists(name string) bool {
	m.mu.RLock()
	known := m.reports[name]
	m.mu.RUnlock()
	if known {
		return true
	}

	if _, err := os.Stat(m.Path(name)); err == nil {
		m.mu.Lock()
		m.reports[name] = true
		m.mu.Unlock()
		return true
	}

	return false
}

// Path returns the file path used for the named report
func (m *Manager) Path(name string) string {
	return filepath.Join(m.outputDir, name+reportExt)
}

// SaveJSON encodes v as indented JSON and stores it as the named report
func (m *Manager) SaveJSON(v interface{}, name string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return m.SaveReport(&buf, name)
}

// SaveReport copies r into the named report. The file is written to a
// temporary path and renamed so readers never see a partial report.
func (m *Manager) SaveReport(r io.Reader, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid report name %q", name)
	}

	filename := m.Path(name)
	tempFile := filename + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}

	_, err = io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to write report data: %w", err)
	}

	if closeErr != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to rename temporary file: %w", err)
	}

	m.mu.Lock()
	m.reports[name] = true
	m.mu.Unlock()

	return filename, nil
}

// GetOutputDir returns the output directory path
func (m *Manager) GetOutputDir() string {
	return m.outputDir
}

// GetReportCount returns the number of known reports
func (m *Manager) GetReportCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.reports)
}
