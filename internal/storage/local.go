package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LocalStorageClient handles local file system storage operations
type LocalStorageClient struct {
	baseDir string
}

// NewLocalStorageClient creates a new local storage client rooted at
// baseDir, creating the directory if needed
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if baseDir == "" {
		baseDir = "reports"
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}

	return &LocalStorageClient{
		baseDir: baseDir,
	}, nil
}

// BaseDir returns the root directory reports are stored under
func (l *LocalStorageClient) BaseDir() string {
	return l.baseDir
}

// Close is a no-op for local storage
func (l *LocalStorageClient) Close() error {
	return nil
}

// CreateDir creates a directory under the base directory
func (l *LocalStorageClient) CreateDir(ctx context.Context, dirPath string) error {
	fullPath := filepath.Join(l.baseDir, dirPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fullPath, err)
	}
	return nil
}

// StoreFile writes a file under the base directory, creating parent
// directories as needed
func (l *LocalStorageClient) StoreFile(ctx context.Context, filePath string, fileData []byte) error {
	fullPath := filepath.Join(l.baseDir, filePath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, fileData, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}

	return nil
}

// GetFile retrieves a file from local storage
func (l *LocalStorageClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	fullPath := filepath.Join(l.baseDir, filePath)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fullPath, err)
	}
	return data, nil
}

// ListDir lists entries of a directory relative to the base directory
func (l *LocalStorageClient) ListDir(ctx context.Context, dirPath string, recursive bool) ([]string, error) {
	fullPath := filepath.Join(l.baseDir, dirPath)

	var names []string
	if recursive {
		err := filepath.Walk(fullPath, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil // Skip unreadable entries
			}
			if !info.IsDir() {
				relPath, _ := filepath.Rel(l.baseDir, path)
				names = append(names, filepath.ToSlash(relPath))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory %s: %w", fullPath, err)
		}
		return names, nil
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// FileExists checks if a file exists under the base directory
func (l *LocalStorageClient) FileExists(ctx context.Context, filePath string) (bool, error) {
	fullPath := filepath.Join(l.baseDir, filePath)
	_, err := os.Stat(fullPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ListReports lists stored report pages, newest first
func (l *LocalStorageClient) ListReports(ctx context.Context, limit int) ([]string, error) {
	var reportPaths []string

	err := filepath.Walk(l.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors and continue
		}
		if info.Name() == "index.html" {
			relPath, _ := filepath.Rel(l.baseDir, path)
			reportPaths = append(reportPaths, filepath.ToSlash(relPath))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk reports directory: %w", err)
	}

	// Folder names sort chronologically, so reverse for newest first
	sort.Strings(reportPaths)
	for i, j := 0, len(reportPaths)-1; i < j; i, j = i+1, j-1 {
		reportPaths[i], reportPaths[j] = reportPaths[j], reportPaths[i]
	}

	if limit > 0 && limit < len(reportPaths) {
		reportPaths = reportPaths[:limit]
	}

	return reportPaths, nil
}
