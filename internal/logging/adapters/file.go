package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"vahcare-api/internal/logging/types"
)

// FileAdapter implements the LogAdapter interface for append-only file output
type FileAdapter struct {
	name        string
	filePath    string
	syncOnWrite bool
	file        *os.File
	mu          sync.Mutex
}

// FileConfig represents configuration for the file adapter
type FileConfig struct {
	FilePath    string `yaml:"file_path"`
	CreateDirs  bool   `yaml:"create_dirs"`
	SyncOnWrite bool   `yaml:"sync_on_write"`
}

// NewFileAdapter creates a new file adapter, opening the target file for append
func NewFileAdapter(name string, config FileConfig) (*FileAdapter, error) {
	if config.FilePath == "" {
		return nil, fmt.Errorf("file_path is required for file adapter")
	}

	if config.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &FileAdapter{
		name:        name,
		filePath:    config.FilePath,
		syncOnWrite: config.SyncOnWrite,
		file:        file,
	}, nil
}

// Write writes a log entry to the file as a JSON line
func (a *FileAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return fmt.Errorf("file adapter %s is closed", a.name)
	}

	logData := map[string]interface{}{
		"level":   entry.Level.String(),
		"message": entry.Message,
		"time":    entry.Timestamp.Format(time.RFC3339),
	}
	for k, v := range entry.Fields {
		logData[k] = v
	}

	data, err := json.Marshal(logData)
	if err != nil {
		return fmt.Errorf("failed to format log entry: %w", err)
	}

	if _, err := a.file.Write(append(data, '\n')); err != nil {
		return err
	}

	if a.syncOnWrite {
		return a.file.Sync()
	}
	return nil
}

// Close closes the underlying file
func (a *FileAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return nil
	}
	err := a.file.Close()
	a.file = nil
	return err
}

// Health checks that the log file is still writable
func (a *FileAdapter) Health() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return fmt.Errorf("file adapter %s is closed", a.name)
	}
	return nil
}

// Name returns the name of the adapter
func (a *FileAdapter) Name() string {
	return a.name
}
