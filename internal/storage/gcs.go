package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"aqimon/internal/logger"
)

// GCSClient handles Google Cloud Storage operations
type GCSClient struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

// NewGCSClient creates a new GCS client
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("GCS bucket name is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
		log:    logger.GetGlobalLogger().WithComponent("gcs"),
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// CreateDir is a no-op: GCS has no directories, object paths imply them
func (g *GCSClient) CreateDir(ctx context.Context, dirPath string) error {
	return nil
}

// StoreFile stores a file as a GCS object
func (g *GCSClient) StoreFile(ctx context.Context, filePath string, fileData []byte) error {
	g.log.Debug("Storing file to GCS", logger.Fields{
		"bucket": g.bucket,
		"object": filePath,
		"bytes":  len(fileData),
	})

	obj := g.client.Bucket(g.bucket).Object(filePath)
	writer := obj.NewWriter(ctx)
	writer.ContentType = GetContentType(filePath)
	writer.CacheControl = "public, max-age=3600"
	writer.Metadata = map[string]string{
		"generated-at": time.Now().UTC().Format(time.RFC3339),
		"filename":     path.Base(filePath),
	}

	if _, err := writer.Write(fileData); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write file to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS file upload: %w", err)
	}

	return nil
}

// GetFile retrieves an object from GCS
func (g *GCSClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	obj := g.client.Bucket(g.bucket).Object(filePath)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for file %s: %w", filePath, err)
	}
	defer reader.Close()

	fileData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return fileData, nil
}

// ListDir lists objects under a prefix
func (g *GCSClient) ListDir(ctx context.Context, dirPath string, recursive bool) ([]string, error) {
	prefix := dirPath
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	query := &storage.Query{Prefix: prefix}
	if !recursive {
		query.Delimiter = "/"
	}

	it := g.client.Bucket(g.bucket).Objects(ctx, query)

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if attrs.Name != "" {
			names = append(names, attrs.Name)
		} else if attrs.Prefix != "" {
			names = append(names, attrs.Prefix)
		}
	}

	return names, nil
}

// FileExists checks if an object exists
func (g *GCSClient) FileExists(ctx context.Context, filePath string) (bool, error) {
	obj := g.client.Bucket(g.bucket).Object(filePath)
	_, err := obj.Attrs(ctx)
	if err == storage.ErrObjectNotExist {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check object %s: %w", filePath, err)
	}
	return true, nil
}

// ListReports lists stored report pages, newest first
func (g *GCSClient) ListReports(ctx context.Context, limit int) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{})

	var reportPaths []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, "/index.html") {
			reportPaths = append(reportPaths, attrs.Name)
		}
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
