package storage

import (
	"testing"
	"time"
)

func TestGenerateReportFolderPath(t *testing.T) {
	tests := []struct {
		name      string
		timestamp time.Time
		expected  string
	}{
		{
			name:      "standard date and time",
			timestamp: time.Date(2026, 8, 17, 14, 30, 45, 0, time.UTC),
			expected:  "2026/08/17/AQIReport-2026-08-17-14-30-45",
		},
		{
			name:      "new year date",
			timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			expected:  "2026/01/01/AQIReport-2026-01-01-00-00-00",
		},
		{
			name:      "end of year date",
			timestamp: time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
			expected:  "2025/12/31/AQIReport-2025-12-31-23-59-59",
		},
		{
			name:      "single digit month and day",
			timestamp: time.Date(2026, 3, 5, 8, 7, 6, 0, time.UTC),
			expected:  "2026/03/05/AQIReport-2026-03-05-08-07-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateReportFolderPath(tt.timestamp)
			if result != tt.expected {
				t.Errorf("GenerateReportFolderPath() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGenerateReportFolderPathUniqueness(t *testing.T) {
	timestamp1 := time.Date(2026, 8, 17, 14, 30, 45, 0, time.UTC)
	timestamp2 := timestamp1.Add(time.Second)

	if GenerateReportFolderPath(timestamp1) == GenerateReportFolderPath(timestamp2) {
		t.Error("Different timestamps should generate different paths")
	}
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"data.json", "application/json"},
		{"index.html", "text/html"},
		{"styles.css", "text/css"},
		{"readme.txt", "text/plain"},
		{"report.md", "text/markdown"},
		{"comparison.png", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"animation.gif", "image/gif"},
		{"data.xyz", "application/octet-stream"},
		{"Dockerfile", "application/octet-stream"},
		{"", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			result := GetContentType(tt.filename)
			if result != tt.expected {
				t.Errorf("GetContentType(%q) = %v, want %v", tt.filename, result, tt.expected)
			}
		})
	}
}
