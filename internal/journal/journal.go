// internal/journal/journal.go
package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bstardust/photo-ingest/internal/logger"
)

// Journal tracks which source files have been ingested, so an interrupted
// batch run can resume without re-ingesting.
type Journal struct {
	mu         sync.Mutex
	path       string
	Entries    map[string]Entry `json:"entries"`
	batchCount int
}

// Entry records one completed ingestion
type Entry struct {
	Path      string    `json:"path"`
	ID        string    `json:"id"`
	Ingested  bool      `json:"ingested"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a journal backed by the file at path. An empty path picks a
// default in the user's home directory.
func New(path string) *Journal {
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".photo-ingest-journal.json")
		} else {
			path = ".photo-ingest-journal.json"
		}
	}

	return &Journal{
		path:    path,
		Entries: make(map[string]Entry),
	}
}

// Load loads the journal from disk; a missing file starts fresh
func (j *Journal) Load() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, err := os.Stat(j.path); os.IsNotExist(err) {
		logger.Info("No journal file found at %s, starting fresh", j.path)
		return nil
	}

	data, err := os.ReadFile(j.path)
	if err != nil {
		return err
	}

	var loaded Journal
	if err := json.Unmarshal(data, &loaded); err != nil {
		return err
	}

	j.Entries = loaded.Entries
	if j.Entries == nil {
		j.Entries = make(map[string]Entry)
	}
	logger.Info("Loaded journal with %d entries from %s", len(j.Entries), j.path)

	return nil
}

// Save saves the journal to disk
func (j *Journal) Save() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.save()
}

func (j *Journal) save() error {
	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(j.path, data, 0644)
}

// MarkIngested records a successful ingestion of the given source path
func (j *Journal) MarkIngested(path, id string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.Entries[path] = Entry{
		Path:      path,
		ID:        id,
		Ingested:  true,
		Timestamp: time.Now(),
	}

	// Persist every 25 files so an interrupt loses little progress
	j.batchCount++
	if j.batchCount >= 25 {
		j.batchCount = 0
		if err := j.save(); err != nil {
			logger.Error("Failed to save journal: %v", err)
		}
	}
}

// IsIngested checks if a source path has already been ingested
func (j *Journal) IsIngested(path string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	entry, exists := j.Entries[path]
	return exists && entry.Ingested
}

// ListIngested returns the source paths of all completed ingestions
func (j *Journal) ListIngested() []string {
	j.mu.Lock()
	defer j.mu.Unlock()

	var ingested []string
	for path, entry := range j.Entries {
		if entry.Ingested {
			ingested = append(ingested, path)
		}
	}
	return ingested
}

// Stats returns totals for reporting
func (j *Journal) Stats() (total int, ingested int) {
	j.mu.Lock()
	defer j.mu.Unlock()

	total = len(j.Entries)
	for _, entry := range j.Entries {
		if entry.Ingested {
			ingested++
		}
	}
	return total, ingested
}
